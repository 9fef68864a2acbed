package config

import (
	"context"

	"github.com/m-mizutani/relboard/pkg/infra/fixture"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Fixture holds the sample data source
type Fixture struct {
	Source string
}

// Flags returns CLI flags for fixture configuration
func (c *Fixture) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "fixture",
			Usage:       "TOML fixture to seed the store (local path or gs://bucket/object); embedded sample when empty",
			Destination: &c.Source,
			Sources:     cli.EnvVars("RELBOARD_FIXTURE"),
		},
	}
}

// Configure loads the fixture
func (c *Fixture) Configure(ctx context.Context, clientOpts ...option.ClientOption) (*fixture.Fixture, error) {
	return fixture.Load(ctx, c.Source, clientOpts...)
}
