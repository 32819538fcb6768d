package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// GitHubHandler proxies repository listings from GitHub
type GitHubHandler struct {
	githubService ports.GitHubService
	logger        *logger.Logger
}

// NewGitHubHandler creates a new GitHub proxy handler
func NewGitHubHandler(githubService ports.GitHubService, logger *logger.Logger) *GitHubHandler {
	return &GitHubHandler{
		githubService: githubService,
		logger:        logger,
	}
}

// ListRepos returns the public repositories of a user. Upstream errors keep
// their status code.
//
//	@Summary	List GitHub repositories
//	@Tags		github
//	@Produce	json
//	@Param		username	path		string	true	"GitHub user"
//	@Success	200			{array}		entities.GitHubRepo
//	@Failure	400			{object}	ports.ErrorResponse
//	@Router		/github/repos/{username} [get]
func (h *GitHubHandler) ListRepos(c echo.Context) error {
	username := c.Param("username")

	repos, err := h.githubService.ListRepos(c.Request().Context(), username)
	if err != nil {
		h.logger.Warnw("GitHub proxy failed", "username", username, "error", err)
		he := serviceError(err, "GitHub user not found", "Failed to fetch GitHub repos")
		if he.Code != http.StatusBadRequest {
			he.Message = "Failed to fetch GitHub repos"
		}
		return he
	}

	return c.JSON(http.StatusOK, repos)
}

// ShowcaseHandler fills missing selected project images from GitHub
type ShowcaseHandler struct {
	showcaseService ports.ShowcaseService
	logger          *logger.Logger
}

// NewShowcaseHandler creates a new showcase handler
func NewShowcaseHandler(showcaseService ports.ShowcaseService, logger *logger.Logger) *ShowcaseHandler {
	return &ShowcaseHandler{
		showcaseService: showcaseService,
		logger:          logger,
	}
}

// Refresh probes every selected project without an image
func (h *ShowcaseHandler) Refresh(c echo.Context) error {
	result, err := h.showcaseService.RefreshShowcaseImages(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Showcase refresh failed", "error", err)
		return serviceError(err, "Selected project not found", "Failed to refresh showcase images")
	}

	h.logger.LogAdminAction("refresh_showcase", "selected-projects", 0, c.RealIP())
	return c.JSON(http.StatusOK, result)
}
