package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
	"github.com/m-mizutani/relboard/pkg/utils/async"
)

const incidentIDPrefix = "INC-"

type incidentUseCase struct {
	repo interfaces.Repository
	cfg  *config

	pendingMu sync.Mutex
	pending   map[types.DeletionToken]*model.DeletionRequest
}

// NewIncident creates a new instance of IncidentUseCase
func NewIncident(repo interfaces.Repository, opts ...Option) interfaces.IncidentUseCase {
	return &incidentUseCase{
		repo:    repo,
		cfg:     newConfig(opts...),
		pending: make(map[types.DeletionToken]*model.DeletionRequest),
	}
}

// ListIncidents paginates incidents in insertion order
func (uc *incidentUseCase) ListIncidents(ctx context.Context, page int) (*model.Page[*model.Incident], error) {
	incidents, err := uc.repo.ListIncidents(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}
	return model.Paginate(incidents, page, uc.cfg.pageSize), nil
}

// GetIncident returns the incident or a not_found error
func (uc *incidentUseCase) GetIncident(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	incident, err := uc.repo.GetIncident(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", id))
	}
	if incident == nil {
		return nil, goerr.New("incident not found", goerr.T(types.ErrTagNotFound), goerr.V("id", id))
	}
	return incident, nil
}

// CreateIncident stores a new incident linked to input.ReleaseID and
// increments the incident count of that release. The release must exist.
func (uc *incidentUseCase) CreateIncident(ctx context.Context, input *model.IncidentInput) (*model.Incident, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	uc.cfg.lock.Lock()
	defer uc.cfg.lock.Unlock()

	if input.ReleaseID == "" {
		return nil, goerr.New("release is required", goerr.T(types.ErrTagInvalidInput))
	}
	release, err := uc.repo.GetRelease(ctx, input.ReleaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release", goerr.V("release_id", input.ReleaseID))
	}
	if release == nil {
		return nil, goerr.New("release not found",
			goerr.T(types.ErrTagInvalidInput),
			goerr.V("release_id", input.ReleaseID))
	}

	incidents, err := uc.repo.ListIncidents(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}

	incident := &model.Incident{
		ID:            nextIncidentID(incidents),
		Name:          input.Name,
		DateReported:  input.DateReported,
		Description:   input.Description,
		DocumentLink:  input.DocumentLink,
		LinkedRelease: release.Ref(),
		CreatedAt:     uc.cfg.now(),
	}

	if err := uc.repo.PutIncident(ctx, incident); err != nil {
		return nil, goerr.Wrap(err, "failed to create incident", goerr.V("id", incident.ID))
	}
	if err := uc.adjustIncidentCount(ctx, release.ID, 1); err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("Incident created",
		"id", incident.ID,
		"release_id", incident.LinkedRelease.ID,
	)
	uc.notify(ctx, interfaces.IncidentCreated, incident)
	return incident, nil
}

// RelinkIncident replaces the linked release with a reference computed from
// the release now. An unknown incident returns (nil, nil); an unknown release
// returns the incident unchanged.
func (uc *incidentUseCase) RelinkIncident(ctx context.Context, incidentID types.IncidentID, releaseID types.ReleaseID) (*model.Incident, error) {
	logger := ctxlog.From(ctx)

	uc.cfg.lock.Lock()
	defer uc.cfg.lock.Unlock()

	incident, err := uc.repo.GetIncident(ctx, incidentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", incidentID))
	}
	if incident == nil {
		logger.Debug("Relink ignored, incident not found", "id", incidentID)
		return nil, nil
	}

	release, err := uc.repo.GetRelease(ctx, releaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release", goerr.V("release_id", releaseID))
	}
	if release == nil {
		logger.Debug("Relink ignored, release not found", "id", incidentID, "release_id", releaseID)
		return incident, nil
	}

	prev := incident.LinkedRelease.ID
	incident.LinkedRelease = release.Ref()

	// The link is the source of truth; counts follow it
	if err := uc.repo.PutIncident(ctx, incident); err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V("id", incidentID))
	}

	if prev != release.ID {
		if err := uc.adjustIncidentCount(ctx, prev, -1); err != nil {
			return nil, err
		}
		if err := uc.adjustIncidentCount(ctx, release.ID, 1); err != nil {
			return nil, err
		}
	}

	logger.Info("Incident relinked",
		"id", incidentID,
		"from_release_id", prev,
		"to_release_id", release.ID,
	)
	uc.notify(ctx, interfaces.IncidentRelinked, incident)
	return incident, nil
}

// RequestDelete opens the first phase of a delete. Nothing is removed until
// ConfirmDelete is called with the returned token. An incident that is
// already gone returns (nil, nil).
func (uc *incidentUseCase) RequestDelete(ctx context.Context, incidentID types.IncidentID) (*model.DeletionRequest, error) {
	incident, err := uc.repo.GetIncident(ctx, incidentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", incidentID))
	}
	if incident == nil {
		ctxlog.From(ctx).Debug("Delete request ignored, incident not found", "id", incidentID)
		return nil, nil
	}

	req := &model.DeletionRequest{
		Token:       types.DeletionToken(uuid.NewString()),
		IncidentID:  incidentID,
		RequestedAt: uc.cfg.now(),
	}

	uc.pendingMu.Lock()
	uc.prunePending()
	uc.pending[req.Token] = req
	uc.pendingMu.Unlock()

	ctxlog.From(ctx).Info("Incident deletion requested", "id", incidentID, "token", req.Token)
	return req, nil
}

// ConfirmDelete removes the incident of the request. If the incident is
// already gone it is a no-op. On a store failure the request stays pending
// so the same token can be confirmed again.
func (uc *incidentUseCase) ConfirmDelete(ctx context.Context, token types.DeletionToken) error {
	req, err := uc.takePending(token)
	if err != nil {
		return err
	}

	if err := uc.deleteIncident(ctx, req.IncidentID); err != nil {
		uc.restorePending(req)
		return err
	}
	return nil
}

func (uc *incidentUseCase) deleteIncident(ctx context.Context, id types.IncidentID) error {
	uc.cfg.lock.Lock()
	defer uc.cfg.lock.Unlock()

	incident, err := uc.repo.GetIncident(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get incident", goerr.V("id", id))
	}
	if incident == nil {
		ctxlog.From(ctx).Debug("Delete confirmed for missing incident", "id", id)
		return nil
	}

	if err := uc.repo.DeleteIncident(ctx, incident.ID); err != nil {
		return goerr.Wrap(err, "failed to delete incident", goerr.V("id", incident.ID))
	}
	if err := uc.adjustIncidentCount(ctx, incident.LinkedRelease.ID, -1); err != nil {
		// keep the incident so a retry can finish both steps
		if putErr := uc.repo.PutIncident(ctx, incident); putErr != nil {
			ctxlog.From(ctx).Error("Failed to restore incident", "id", incident.ID, "error", putErr)
		}
		return err
	}

	ctxlog.From(ctx).Info("Incident deleted", "id", incident.ID)
	uc.notify(ctx, interfaces.IncidentDeleted, incident)
	return nil
}

// CancelDelete drops the pending request and leaves state unchanged
func (uc *incidentUseCase) CancelDelete(ctx context.Context, token types.DeletionToken) error {
	req, err := uc.takePending(token)
	if err != nil {
		return err
	}
	ctxlog.From(ctx).Info("Incident deletion cancelled", "id", req.IncidentID)
	return nil
}

func (uc *incidentUseCase) takePending(token types.DeletionToken) (*model.DeletionRequest, error) {
	uc.pendingMu.Lock()
	defer uc.pendingMu.Unlock()

	uc.prunePending()
	req, ok := uc.pending[token]
	if !ok {
		return nil, goerr.New("deletion request not found", goerr.T(types.ErrTagNotFound), goerr.V("token", token))
	}
	delete(uc.pending, token)
	return req, nil
}

func (uc *incidentUseCase) restorePending(req *model.DeletionRequest) {
	uc.pendingMu.Lock()
	defer uc.pendingMu.Unlock()
	uc.pending[req.Token] = req
}

// prunePending drops expired requests. pendingMu must be held.
func (uc *incidentUseCase) prunePending() {
	now := uc.cfg.now()
	for token, req := range uc.pending {
		if now.Sub(req.RequestedAt) > uc.cfg.deletionTTL {
			delete(uc.pending, token)
		}
	}
}

// adjustIncidentCount adds delta to the release's incident count, never
// going below zero. A missing release is skipped. cfg.lock must be held.
func (uc *incidentUseCase) adjustIncidentCount(ctx context.Context, id types.ReleaseID, delta int) error {
	if id == "" {
		return nil
	}
	release, err := uc.repo.GetRelease(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get release", goerr.V("release_id", id))
	}
	if release == nil {
		return nil
	}

	release.IncidentCount = max(0, release.IncidentCount+delta)
	if err := uc.repo.PutRelease(ctx, release); err != nil {
		return goerr.Wrap(err, "failed to update incident count", goerr.V("release_id", id))
	}
	return nil
}

func (uc *incidentUseCase) notify(ctx context.Context, event interfaces.IncidentEvent, incident *model.Incident) {
	if uc.cfg.notifier == nil {
		return
	}
	notifier := uc.cfg.notifier
	snapshot := incident.Copy()
	async.Dispatch(ctx, "notify-incident-"+string(event), func(ctx context.Context) error {
		return notifier.NotifyIncident(ctx, event, snapshot)
	})
}

// nextIncidentID returns INC-NNN one above the largest existing number
func nextIncidentID(incidents []*model.Incident) types.IncidentID {
	maxID := 0
	for _, inc := range incidents {
		s, ok := strings.CutPrefix(inc.ID.String(), incidentIDPrefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(s); err == nil && n > maxID {
			maxID = n
		}
	}
	return types.IncidentID(fmt.Sprintf("%s%03d", incidentIDPrefix, maxID+1))
}
