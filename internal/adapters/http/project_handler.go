package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// ProjectHandler handles GitHub-linked project overrides and their media
type ProjectHandler struct {
	projectService ports.ProjectService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService ports.ProjectService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// List returns all projects
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List projects failed", "error", err)
		return serviceError(err, "Project not found", "Failed to fetch projects")
	}
	return c.JSON(http.StatusOK, projects)
}

// Upsert creates a project or updates the one with the same githubId
func (h *ProjectHandler) Upsert(c echo.Context) error {
	var req ports.UpsertProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid project data")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.Upsert(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Upsert project failed", "github_id", req.GithubID, "error", err)
		return serviceError(err, "Project not found", "Failed to save project")
	}

	h.logger.LogAdminAction("upsert", "projects", project.ID, c.RealIP())
	return c.JSON(http.StatusOK, project)
}

// Upload attaches the multipart "file" field to a project as its image or video
func (h *ProjectHandler) Upload(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded").SetInternal(err)
	}
	defer file.Close()

	project, err := h.projectService.AttachMedia(c.Request().Context(), id, ports.MediaUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Body:        file,
	})
	if err != nil {
		h.logger.Errorw("Upload failed", "project_id", id, "error", err)
		return serviceError(err, "Project not found", "Upload failed")
	}

	h.logger.LogAdminAction("upload", "projects", id, c.RealIP())
	return c.JSON(http.StatusOK, project)
}
