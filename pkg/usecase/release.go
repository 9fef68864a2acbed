package usecase

import (
	"context"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

type releaseUseCase struct {
	repo interfaces.Repository
	cfg  *config
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(repo interfaces.Repository, opts ...Option) interfaces.ReleaseUseCase {
	return &releaseUseCase{
		repo: repo,
		cfg:  newConfig(opts...),
	}
}

// ListReleases filters then paginates releases in insertion order
func (uc *releaseUseCase) ListReleases(ctx context.Context, sel model.FilterSelection, page int) (*model.Page[*model.Release], error) {
	releases, err := uc.repo.ListReleases(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list releases")
	}

	sel = sel.Normalize(model.BuildFilterOptions(releases))
	return model.Paginate(model.FilterReleases(releases, sel), page, uc.cfg.pageSize), nil
}

// GetRelease returns the release or a not_found error
func (uc *releaseUseCase) GetRelease(ctx context.Context, id types.ReleaseID) (*model.Release, error) {
	release, err := uc.repo.GetRelease(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release", goerr.V("id", id))
	}
	if release == nil {
		return nil, goerr.New("release not found", goerr.T(types.ErrTagNotFound), goerr.V("id", id))
	}
	return release, nil
}

// CreateRelease validates the form and stores a new release with the next
// numeric id
func (uc *releaseUseCase) CreateRelease(ctx context.Context, input *model.ReleaseInput) (*model.Release, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	uc.cfg.lock.Lock()
	defer uc.cfg.lock.Unlock()

	releases, err := uc.repo.ListReleases(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list releases")
	}

	release := &model.Release{
		ID:        nextReleaseID(releases),
		CreatedAt: uc.cfg.now(),
	}
	input.Apply(release)

	if err := uc.repo.PutRelease(ctx, release); err != nil {
		return nil, goerr.Wrap(err, "failed to create release", goerr.V("id", release.ID))
	}

	ctxlog.From(ctx).Info("Release created",
		"id", release.ID,
		"business_unit", release.BusinessUnit,
		"product", release.Product,
		"name", release.Name,
	)
	return release, nil
}

// UpdateRelease replaces the editable fields of an existing release.
// Incidents keep the link name computed when they were linked.
func (uc *releaseUseCase) UpdateRelease(ctx context.Context, id types.ReleaseID, input *model.ReleaseInput) (*model.Release, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	uc.cfg.lock.Lock()
	defer uc.cfg.lock.Unlock()

	release, err := uc.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	input.Apply(release)

	if err := uc.repo.PutRelease(ctx, release); err != nil {
		return nil, goerr.Wrap(err, "failed to update release", goerr.V("id", id))
	}

	ctxlog.From(ctx).Info("Release updated", "id", id)
	return release, nil
}

// nextReleaseID returns one more than the largest numeric id. Non-numeric ids
// are ignored.
func nextReleaseID(releases []*model.Release) types.ReleaseID {
	maxID := 0
	for _, r := range releases {
		if n, err := strconv.Atoi(r.ID.String()); err == nil && n > maxID {
			maxID = n
		}
	}
	return types.ReleaseID(strconv.Itoa(maxID + 1))
}
