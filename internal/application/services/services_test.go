package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio/internal/adapters/repository"
	"github.com/folio/portfolio/internal/infrastructure/logger"
)

func newTestRepositories(t *testing.T) *repository.Repositories {
	t.Helper()

	backend, err := repository.NewFileBackend(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	return repository.NewRepositories(repository.NewStore(backend))
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

var bg = context.Background()
