package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Notifier posts incident changes to a Slack channel
type Notifier struct {
	client  *slack.Client
	channel string
}

var _ interfaces.Notifier = (*Notifier)(nil)

// New creates a Notifier. opts are passed to slack.New, e.g. slack.OptionAPIURL in tests.
func New(token, channel string, opts ...slack.Option) *Notifier {
	return &Notifier{
		client:  slack.New(token, opts...),
		channel: channel,
	}
}

// NotifyIncident implements interfaces.Notifier
func (n *Notifier) NotifyIncident(ctx context.Context, event interfaces.IncidentEvent, incident *model.Incident) error {
	text := formatIncident(event, incident)

	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
	}
	if incident.DocumentLink != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("<%s|Incident document>", incident.DocumentLink), false, false),
		))
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post incident notification",
			goerr.V("channel", n.channel),
			goerr.V("incident_id", incident.ID),
			goerr.V("event", event))
	}
	return nil
}

func formatIncident(event interfaces.IncidentEvent, incident *model.Incident) string {
	switch event {
	case interfaces.IncidentCreated:
		return fmt.Sprintf(":rotating_light: *%s* `%s` reported against *%s*", incident.Name, incident.ID, incident.LinkedRelease.Name)
	case interfaces.IncidentRelinked:
		return fmt.Sprintf(":link: `%s` *%s* is now linked to *%s*", incident.ID, incident.Name, incident.LinkedRelease.Name)
	case interfaces.IncidentDeleted:
		return fmt.Sprintf(":wastebasket: `%s` *%s* was deleted", incident.ID, incident.Name)
	default:
		return fmt.Sprintf("`%s` *%s*: %s", incident.ID, incident.Name, event)
	}
}
