// Package config provides configuration parsing for Tempo projects.
//
// The configuration is stored in tempo.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-app",
//	  "serve": {
//	    "addr": ":8080",
//	    "flushCap": 25
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "tempo"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "tempo"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Serve.Addr)
package config
