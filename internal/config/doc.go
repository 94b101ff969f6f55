// Package config provides the configuration system for framekit.
//
// Configuration is layered with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← Highest priority (applied by cmd)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← FRAMEKIT_*
//	├─────────────────────────────┤
//	│  2. Config file             │  ← framekit.toml (+ @include)
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML file and environment variable loading, map merging
//   - watcher: fsnotify based file watching for live reload
//
// # Basic Usage
//
//	cfg, err := config.Load("framekit.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	size := cfg.Window.Size()
//
// # Live Reload
//
//	stop, err := config.Watch("framekit.toml", func(cfg *config.Config, err error) {
//	    if err == nil {
//	        logger.SetLevel(app.ParseLogLevel(cfg.Logging.Level))
//	    }
//	})
//	defer stop()
package config
