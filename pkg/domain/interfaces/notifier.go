package interfaces

import (
	"context"

	"github.com/m-mizutani/relboard/pkg/domain/model"
)

// IncidentEvent is the kind of change announced by a Notifier
type IncidentEvent string

const (
	IncidentCreated  IncidentEvent = "created"
	IncidentRelinked IncidentEvent = "relinked"
	IncidentDeleted  IncidentEvent = "deleted"
)

// Notifier announces incident changes to an external channel
type Notifier interface {
	NotifyIncident(ctx context.Context, event IncidentEvent, incident *model.Incident) error
}
