package instrument

import (
	"time"

	"github.com/tempo-ui/tempo/pkg/sched"
)

// Multi fans observer notifications out to several observers.
func Multi(observers ...sched.Observer) sched.Observer {
	return multiObserver(observers)
}

type multiObserver []sched.Observer

func (m multiObserver) FlushStart(kind sched.FlushKind) {
	for _, o := range m {
		o.FlushStart(kind)
	}
}

func (m multiObserver) FlushDone(kind sched.FlushKind, passes int, d time.Duration, err error) {
	for _, o := range m {
		o.FlushDone(kind, passes, d, err)
	}
}

func (m multiObserver) RenderPass(components int) {
	for _, o := range m {
		o.RenderPass(components)
	}
}

func (m multiObserver) EffectRun() {
	for _, o := range m {
		o.EffectRun()
	}
}
