// Package config provides process configuration for shortcast.
//
// Configuration is loaded from environment variables using the env package.
// All configuration values have sensible defaults for development use; the
// CLI loads a .env file first when one exists.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
