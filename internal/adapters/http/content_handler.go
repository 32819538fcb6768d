package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// ContentHandler serves the list, featured, CRUD and ordering routes of one
// content collection.
type ContentHandler[T entities.Record] struct {
	service    ports.ContentService[T]
	collection string
	label      string
	newCreate  func() ports.Creator[T]
	newUpdate  func() ports.Patcher[T]
	logger     *logger.Logger
}

// NewContentHandler creates a handler for the collection served under
// /api/<collection>. label names one record in error messages ("Blog").
// newCreate and newUpdate return empty request values to bind into.
func NewContentHandler[T entities.Record](
	collection, label string,
	service ports.ContentService[T],
	newCreate func() ports.Creator[T],
	newUpdate func() ports.Patcher[T],
	logger *logger.Logger,
) *ContentHandler[T] {
	return &ContentHandler[T]{
		service:    service,
		collection: collection,
		label:      label,
		newCreate:  newCreate,
		newUpdate:  newUpdate,
		logger:     logger,
	}
}

// Collection returns the path segment the handler is mounted on
func (h *ContentHandler[T]) Collection() string {
	return h.collection
}

// Register mounts the routes on g. Mutations go through admin.
func (h *ContentHandler[T]) Register(g *echo.Group, admin echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/featured", h.Featured)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, admin)
	g.PUT("/reorder", h.Reorder, admin)
	g.PUT("/:id", h.Update, admin)
	g.PUT("/:id/move", h.Move, admin)
	g.DELETE("/:id", h.Delete, admin)
}

// List returns every record in display order
func (h *ContentHandler[T]) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List failed", "collection", h.collection, "error", err)
		return serviceError(err, h.label+" not found", "Failed to fetch "+h.collection)
	}
	return c.JSON(http.StatusOK, records)
}

// Featured returns the featured records in display order
func (h *ContentHandler[T]) Featured(c echo.Context) error {
	records, err := h.service.Featured(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Featured list failed", "collection", h.collection, "error", err)
		return serviceError(err, h.label+" not found", "Failed to fetch featured "+h.collection)
	}
	return c.JSON(http.StatusOK, records)
}

// Get returns one record
func (h *ContentHandler[T]) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	record, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, h.label+" not found", "Failed to fetch "+h.collection)
	}
	return c.JSON(http.StatusOK, record)
}

// Create adds a record
func (h *ContentHandler[T]) Create(c echo.Context) error {
	req := h.newCreate()
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	record, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create failed", "collection", h.collection, "error", err)
		return serviceError(err, h.label+" not found", "Failed to create "+h.label)
	}

	h.logger.LogAdminAction("create", h.collection, record.GetID(), c.RealIP())
	return c.JSON(http.StatusCreated, record)
}

// Update applies the fields present in the request body
func (h *ContentHandler[T]) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req := h.newUpdate()
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	record, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(err, h.label+" not found", "Failed to update "+h.label)
	}

	h.logger.LogAdminAction("update", h.collection, id, c.RealIP())
	return c.JSON(http.StatusOK, record)
}

// Delete removes a record
func (h *ContentHandler[T]) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, h.label+" not found", "Failed to delete "+h.label)
	}

	h.logger.LogAdminAction("delete", h.collection, id, c.RealIP())
	return c.JSON(http.StatusOK, ports.SuccessResponse{Success: true})
}

// Reorder places the listed ids first, in the given order
func (h *ContentHandler[T]) Reorder(c echo.Context) error {
	var req ports.ReorderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	records, err := h.service.Reorder(c.Request().Context(), req.ReorderedIDs)
	if err != nil {
		h.logger.Errorw("Reorder failed", "collection", h.collection, "error", err)
		return serviceError(err, h.label+" not found", "Failed to reorder "+h.collection)
	}

	h.logger.LogAdminAction("reorder", h.collection, 0, c.RealIP())
	return c.JSON(http.StatusOK, records)
}

// Move puts one record at a zero based position
func (h *ContentHandler[T]) Move(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ports.MoveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	records, err := h.service.Move(c.Request().Context(), id, *req.Position)
	if err != nil {
		return serviceError(err, h.label+" not found", "Failed to move "+h.label)
	}

	h.logger.LogAdminAction("move", h.collection, id, c.RealIP())
	return c.JSON(http.StatusOK, records)
}
