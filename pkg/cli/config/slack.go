package config

import (
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds incident notification configuration
type Slack struct {
	Token   string `masq:"secret"`
	Channel string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token for incident notifications",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELBOARD_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID for incident notifications",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("RELBOARD_SLACK_CHANNEL"),
		},
	}
}

// Configure returns the notifier, or nil when Slack is not configured
func (c *Slack) Configure() interfaces.Notifier {
	if c.Token == "" || c.Channel == "" {
		return nil
	}
	return slack.New(c.Token, c.Channel)
}
