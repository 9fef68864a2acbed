package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relboard/pkg/infra/fixture"
	"github.com/m-mizutani/relboard/pkg/infra/memory"
	"github.com/m-mizutani/relboard/pkg/usecase"
)

var testBase = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

// newSeededRepo returns a memory repository holding the embedded sample data
func newSeededRepo(t *testing.T) *memory.Repository {
	t.Helper()
	fx, err := fixture.Default()
	gt.NoError(t, err)

	repo := memory.New()
	gt.NoError(t, usecase.Seed(context.Background(), repo, fx, testBase))
	return repo
}

func fixedClock() func() time.Time {
	return func() time.Time { return testBase.Add(time.Hour) }
}
