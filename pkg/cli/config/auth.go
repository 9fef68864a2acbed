package config

import "github.com/urfave/cli/v3"

// Auth holds API authentication configuration
type Auth struct {
	JWTSecret string `masq:"secret"`
}

// Flags returns CLI flags for auth configuration
func (c *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-jwt-secret",
			Usage:       "HS256 secret for bearer tokens on /api/v1; authentication is disabled when empty",
			Destination: &c.JWTSecret,
			Sources:     cli.EnvVars("RELBOARD_AUTH_JWT_SECRET"),
		},
	}
}
