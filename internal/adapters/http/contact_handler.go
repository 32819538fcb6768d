package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// ContactHandler handles the contact form and the admin inbox
type ContactHandler struct {
	contactService ports.ContactService
	logger         *logger.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService ports.ContactService, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// Submit stores a message sent through the contact form
//
//	@Summary	Send a contact message
//	@Tags		contact
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ports.CreateContactMessageRequest	true	"Message"
//	@Success	200		{object}	ports.SuccessResponse
//	@Failure	400		{object}	ports.ErrorResponse
//	@Router		/contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req ports.CreateContactMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}

	if _, err := h.contactService.Submit(c.Request().Context(), req); err != nil {
		h.logger.Errorw("Contact submit failed", "error", err)
		return serviceError(err, "Message not found", "Failed to send message")
	}

	return c.JSON(http.StatusOK, ports.SuccessResponse{Success: true, Message: "Message sent successfully"})
}

// List returns received messages, newest first
func (h *ContactHandler) List(c echo.Context) error {
	messages, err := h.contactService.List(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List contact messages failed", "error", err)
		return serviceError(err, "Message not found", "Failed to fetch contact messages")
	}
	return c.JSON(http.StatusOK, messages)
}

// Delete removes a message
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.contactService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "Message not found", "Failed to delete message")
	}

	h.logger.LogAdminAction("delete", "contact-messages", id, c.RealIP())
	return c.JSON(http.StatusOK, ports.SuccessResponse{Success: true})
}

// ContactInfoHandler handles the public contact details
type ContactInfoHandler struct {
	infoService ports.ContactInfoService
	logger      *logger.Logger
}

// NewContactInfoHandler creates a new contact info handler
func NewContactInfoHandler(infoService ports.ContactInfoService, logger *logger.Logger) *ContactInfoHandler {
	return &ContactInfoHandler{
		infoService: infoService,
		logger:      logger,
	}
}

// Get returns the contact details
func (h *ContactInfoHandler) Get(c echo.Context) error {
	info, err := h.infoService.Get(c.Request().Context())
	if err != nil {
		return serviceError(err, "Contact info not found", "Failed to fetch contact info")
	}
	return c.JSON(http.StatusOK, info)
}

// Create replaces the contact details
func (h *ContactInfoHandler) Create(c echo.Context) error {
	var req ports.CreateContactInfoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	info, err := h.infoService.Create(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create contact info failed", "error", err)
		return serviceError(err, "Contact info not found", "Failed to save contact info")
	}

	h.logger.LogAdminAction("create", "contact-info", info.ID, c.RealIP())
	return c.JSON(http.StatusOK, info)
}

// Update applies the fields present in the request body
func (h *ContactInfoHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateContactInfoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	info, err := h.infoService.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(err, "Contact info not found", "Failed to update contact info")
	}

	h.logger.LogAdminAction("update", "contact-info", id, c.RealIP())
	return c.JSON(http.StatusOK, info)
}
