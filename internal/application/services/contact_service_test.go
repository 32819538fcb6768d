package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

func TestContactService(t *testing.T) {
	repos := newTestRepositories(t)
	svc := NewContactService(repos.ContactMessages, logger.NewNop())

	msg, err := svc.Submit(bg, ports.CreateContactMessageRequest{
		Name:    " Ada ",
		Email:   "ada@example.com",
		Subject: "Hi",
		Message: "Hello there",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, msg.ID)
	assert.Equal(t, "Ada", msg.Name)

	msgs, err := svc.List(bg)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hello there", msgs[0].Message)

	require.NoError(t, svc.Delete(bg, 1))
	assert.ErrorIs(t, svc.Delete(bg, 1), ports.ErrNotFound)
}

func TestContactInfoService(t *testing.T) {
	repos := newTestRepositories(t)
	svc := NewContactInfoService(repos.ContactInfo, logger.NewNop())

	_, err := svc.Get(bg)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	created, err := svc.Create(bg, ports.CreateContactInfoRequest{
		Email:     "me@example.com",
		Location:  strPtr("Oslo"),
		GithubURL: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Nil(t, created.GithubURL)

	updated, err := svc.Update(bg, 1, ports.UpdateContactInfoRequest{PhoneNumber: strPtr("+47 000")})
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", updated.Email)
	assert.Equal(t, "+47 000", *updated.PhoneNumber)
	assert.Equal(t, "Oslo", *updated.Location)

	_, err = svc.Update(bg, 2, ports.UpdateContactInfoRequest{Email: strPtr("x@example.com")})
	assert.ErrorIs(t, err, ports.ErrNotFound)

	info, err := svc.Get(bg)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", info.Email)
}
