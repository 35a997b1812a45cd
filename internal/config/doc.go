// Package config loads live.json, the configuration of the live bridge
// server.
//
// # Configuration File Structure
//
//	{
//	  "bridge": {
//	    "address": ":7070",
//	    "path": "/ws",
//	    "readLimit": 65536,
//	    "readTimeout": "60s",
//	    "allowedOrigins": ["https://example.com"],
//	    "page": "page.html"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics",
//	    "namespace": "live"
//	  },
//	  "tracing": {
//	    "tracerName": "github.com/vango-dev/live"
//	  },
//	  "log": {
//	    "level": "info"
//	  }
//	}
//
// A missing live.json yields the defaults.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Bridge.Address)
package config
