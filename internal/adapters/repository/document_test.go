package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/ports"
)

func TestDocument_GetMissing(t *testing.T) {
	repos, _ := newTestRepositories(t)

	_, err := repos.ContactInfo.Get(context.Background())
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repos.ContactInfo.Update(context.Background(), func(*entities.ContactInfo) error { return nil })
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDocument_SaveAndUpdate(t *testing.T) {
	repos, _ := newTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.ContactInfo.Save(ctx, &entities.ContactInfo{
		ID:       1,
		Email:    "me@example.com",
		Location: entities.StringPtr("Berlin"),
	}))

	info, err := repos.ContactInfo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", info.Email)
	assert.Equal(t, "Berlin", entities.StringValue(info.Location))

	updated, err := repos.ContactInfo.Update(ctx, func(ci *entities.ContactInfo) error {
		ci.Email = "new@example.com"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "Berlin", entities.StringValue(updated.Location))

	info, err = repos.ContactInfo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", info.Email)
}
