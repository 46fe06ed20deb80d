// Package instrument provides scheduler observers for Prometheus metrics
// and OpenTelemetry tracing.
//
// Observers attach at construction time:
//
//	s := sched.New(sched.WithObserver(instrument.Multi(
//	    instrument.NewPrometheus(),
//	    instrument.NewOTel(),
//	)))
package instrument
