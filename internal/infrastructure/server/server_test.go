package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/portfolio/internal/adapters/repository"
	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/config"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/infrastructure/metrics"
	"github.com/folio/portfolio/internal/ports"
)

const testAdminToken = "test-admin-token"

func newTestServer(t *testing.T, githubURL string) *Server {
	t.Helper()

	cfg := &config.Config{
		App:     config.AppConfig{Name: "portfolio", Version: "test", Environment: "test"},
		Storage: config.StorageConfig{Driver: config.StorageDriverFile, DataDir: t.TempDir(), UploadsDir: t.TempDir(), MaxUploadMB: 1},
		Cache:   config.CacheConfig{Driver: config.CacheDriverMemory},
		GitHub: config.GitHubConfig{
			APIURL:       githubURL,
			RawURL:       githubURL,
			Timeout:      2 * time.Second,
			ProbeTimeout: time.Second,
			CacheTTL:     time.Minute,
			ProbeWorkers: 2,
		},
		Admin:   config.AdminConfig{Token: testAdminToken, Password: "hunter2"},
		JWT:     config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "portfolio"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	m := metrics.New()
	backend, err := repository.NewFileBackend(cfg.Storage.DataDir, logger.NewNop())
	require.NoError(t, err)

	srv, err := New(cfg, Dependencies{
		Store:   repository.NewStore(backend, repository.WithObserver(m)),
		Cache:   repository.NewMemoryCache(),
		Metrics: m,
	}, logger.NewNop())
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body ports.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}

func TestServer_AdminRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:1")
	body := `{"name":"Go","category":"Programming"}`

	rec := do(t, srv, http.MethodPost, "/api/skills", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", errorMessage(t, rec))

	rec = do(t, srv, http.MethodPost, "/api/skills", body, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/skills", body, testAdminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/skills", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var skills []entities.Skill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skills))
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)

	rec = do(t, srv, http.MethodGet, "/api/contact-messages", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_LoginTokenAuthorizesMutations(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:1")

	rec := do(t, srv, http.MethodPost, "/api/admin/auth", `{"password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/admin/auth", `{"password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var login ports.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.True(t, login.Success)
	require.NotEmpty(t, login.Token)

	rec = do(t, srv, http.MethodPost, "/api/certifications",
		`{"title":"CKA","issuer":"CNCF","year":"2024","featured":true}`, login.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/certifications/featured", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"CKA"`)
}

func TestServer_ReorderRouteIsNotAnID(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:1")

	for _, name := range []string{"Go", "Rust"} {
		rec := do(t, srv, http.MethodPost, "/api/skills", `{"name":"`+name+`","category":"Programming"}`, testAdminToken)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, srv, http.MethodPut, "/api/skills/reorder", `{"reorderedIds":[2,1]}`, testAdminToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/skills", "", "")
	var skills []entities.Skill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skills))
	require.Len(t, skills, 2)
	assert.Equal(t, "Rust", skills[0].Name)
	assert.Equal(t, "Go", skills[1].Name)
}

func TestServer_ErrorBodies(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:1")

	rec := do(t, srv, http.MethodGet, "/api/blogs/7", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog not found", errorMessage(t, rec))

	rec = do(t, srv, http.MethodGet, "/api/nothing-here", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, errorMessage(t, rec))

	rec = do(t, srv, http.MethodPost, "/api/contact", `{"name":"Ada"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid form data", errorMessage(t, rec))
}

func TestServer_GitHubProxyPassesStatusThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/octocat/repos":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1,"name":"hello-world","html_url":"https://github.com/octocat/hello-world"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		}
	}))
	defer upstream.Close()

	srv := newTestServer(t, upstream.URL)

	rec := do(t, srv, http.MethodGet, "/api/github/repos/octocat", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"name":"hello-world"`)

	rec = do(t, srv, http.MethodGet, "/api/github/repos/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Failed to fetch GitHub repos", errorMessage(t, rec))
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:1")

	rec := do(t, srv, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/health/detailed", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage"`)
	assert.Contains(t, rec.Body.String(), `"cache"`)

	rec = do(t, srv, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	do(t, srv, http.MethodGet, "/api/skills", "", "")
	rec = do(t, srv, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `portfolio_storage_operations_total{collection="skills",op="list",result="ok"}`)
}
