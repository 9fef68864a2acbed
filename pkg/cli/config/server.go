package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr          string
	PageSize      int
	ActivityLimit int
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("RELBOARD_ADDR"),
		},
		&cli.IntFlag{
			Name:        "page-size",
			Usage:       "Number of rows in a release or incident list page",
			Value:       5,
			Destination: &c.PageSize,
			Sources:     cli.EnvVars("RELBOARD_PAGE_SIZE"),
		},
		&cli.IntFlag{
			Name:        "activity-limit",
			Usage:       "Default number of items in the activity feed",
			Value:       10,
			Destination: &c.ActivityLimit,
			Sources:     cli.EnvVars("RELBOARD_ACTIVITY_LIMIT"),
		},
	}
}
