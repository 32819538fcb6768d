package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

type fakeMediaStore struct {
	saved  map[string]string
	onSave func()
}

func (f *fakeMediaStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	url := "/uploads/" + name
	f.saved[url] = string(data)
	if f.onSave != nil {
		f.onSave()
	}
	return url, nil
}

func (f *fakeMediaStore) Remove(ctx context.Context, url string) error {
	delete(f.saved, url)
	return nil
}

func TestProjectService_Upsert(t *testing.T) {
	repos := newTestRepositories(t)
	svc := NewProjectService(repos.Projects, &fakeMediaStore{}, logger.NewNop())

	created, err := svc.Upsert(bg, ports.UpsertProjectRequest{
		GithubID: 77,
		Name:     "site",
		Category: strPtr("Web"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	updated, err := svc.Upsert(bg, ports.UpsertProjectRequest{
		GithubID:          77,
		Name:              "site v2",
		CustomDescription: strPtr("rewritten"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "site v2", updated.Name)
	assert.Equal(t, "Web", *updated.Category)
	assert.Equal(t, "rewritten", *updated.CustomDescription)

	other, err := svc.Upsert(bg, ports.UpsertProjectRequest{GithubID: 78, Name: "cli"})
	require.NoError(t, err)
	assert.Equal(t, 2, other.ID)

	projects, err := svc.List(bg)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestProjectService_AttachMedia(t *testing.T) {
	repos := newTestRepositories(t)
	media := &fakeMediaStore{}
	svc := NewProjectService(repos.Projects, media, logger.NewNop())

	_, err := svc.Upsert(bg, ports.UpsertProjectRequest{GithubID: 1, Name: "site"})
	require.NoError(t, err)

	withImage, err := svc.AttachMedia(bg, 1, ports.MediaUpload{
		Filename:    "shot.png",
		ContentType: "image/png",
		Body:        strings.NewReader("png"),
	})
	require.NoError(t, err)
	require.NotNil(t, withImage.ImageURL)
	assert.Equal(t, "/uploads/shot.png", *withImage.ImageURL)
	assert.Nil(t, withImage.VideoURL)

	withVideo, err := svc.AttachMedia(bg, 1, ports.MediaUpload{
		Filename:    "demo.mp4",
		ContentType: "video/mp4",
		Body:        strings.NewReader("mp4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/shot.png", *withVideo.ImageURL)
	assert.Equal(t, "/uploads/demo.mp4", *withVideo.VideoURL)

	_, err = svc.AttachMedia(bg, 5, ports.MediaUpload{Filename: "x.png", ContentType: "image/png", Body: strings.NewReader("")})
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.Len(t, media.saved, 2, "nothing stored for a missing project")
}

func TestProjectService_AttachMediaRemovesUploadWhenProjectVanishes(t *testing.T) {
	repos := newTestRepositories(t)
	media := &fakeMediaStore{}
	svc := NewProjectService(repos.Projects, media, logger.NewNop())

	_, err := svc.Upsert(bg, ports.UpsertProjectRequest{GithubID: 1, Name: "site"})
	require.NoError(t, err)

	media.onSave = func() {
		require.NoError(t, repos.Projects.Delete(bg, 1))
	}

	_, err = svc.AttachMedia(bg, 1, ports.MediaUpload{
		Filename:    "shot.png",
		ContentType: "image/png",
		Body:        strings.NewReader("png"),
	})
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.Empty(t, media.saved)
}
