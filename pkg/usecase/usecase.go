package usecase

import (
	"sync"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
)

// UseCases bundles the usecases served by the HTTP controller
type UseCases struct {
	Dashboard interfaces.DashboardUseCase
	Release   interfaces.ReleaseUseCase
	Incident  interfaces.IncidentUseCase
	Chat      interfaces.ChatUseCase
}

// New builds every usecase over one repository. The release and incident
// usecases share a write lock.
func New(repo interfaces.Repository, llmClient gollem.LLMClient, opts ...Option) *UseCases {
	opts = append([]Option{WithLock(&sync.Mutex{})}, opts...)

	return &UseCases{
		Dashboard: NewDashboard(repo),
		Release:   NewRelease(repo, opts...),
		Incident:  NewIncident(repo, opts...),
		Chat:      NewChat(llmClient, opts...),
	}
}
