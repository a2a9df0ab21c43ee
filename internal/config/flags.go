package config

import (
	"flag"
	"io"
	"time"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags:
//
//	-p string   listen port
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret
//	-t int      token lifetime, minutes
//
// Flags left unset keep the value read from the environment.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("research-tracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Port, "p", cfg.Port, "listen port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "database DSN")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "JWT secret key")
	ttl := fs.Int("t", int(cfg.JWTTTL.Minutes()), "token lifetime (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.JWTTTL = time.Duration(*ttl) * time.Minute
	return nil
}
