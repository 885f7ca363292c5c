// Package config provides configuration parsing for vnest projects.
//
// The configuration is stored in vnest.json (or vnest.yaml) at the project
// root. Fields left out of the file take their defaults.
//
// # Configuration File Structure
//
//	{
//	  "name": "demo",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "render": {
//	    "output": "dist/index.html",
//	    "markup": "markdown"
//	  },
//	  "publish": {
//	    "bucket": "my-site",
//	    "key": "index.html",
//	    "region": "us-east-1"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// The YAML form uses the same keys.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Address())
package config
