package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio/internal/adapters/github"
	"github.com/folio/portfolio/internal/adapters/media"
	"github.com/folio/portfolio/internal/application/services"
	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// Validator adapts validator/v10 to echo and knows the domain specific tags.
type Validator struct {
	validator *validator.Validate
}

// NewValidator creates a validator with the domain tags registered:
//
//	education_status  one of the entities.EducationStatus values
//	notblank          non-empty after trimming whitespace
//	optional_url      blank, or a valid URL
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("education_status", func(fl validator.FieldLevel) bool {
		return entities.EducationStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("optional_url", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || v.Var(s, "url") == nil
	})
	return &Validator{validator: v}
}

// Validate validates structs
func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// AuthHandler handles admin login
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login exchanges the admin password for a session token
//
//	@Summary	Admin login
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ports.LoginRequest	true	"Admin password"
//	@Success	200		{object}	ports.LoginResponse
//	@Failure	401		{object}	ports.ErrorResponse
//	@Router		/admin/auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.LogSecurityEvent("admin_login_failed", c.RealIP(), nil)
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed").SetInternal(err)
	}

	h.logger.LogAdminAction("login", "", 0, c.RealIP())
	return c.JSON(http.StatusOK, response)
}

// bindAndValidate decodes the request body into req and runs its validate tags
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format").SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// errorStatus maps service errors onto response codes.
func errorStatus(err error) int {
	var apiErr *github.APIError
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, github.ErrInvalidUsername), errors.Is(err, entities.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// serviceError converts err into an HTTP error. notFound is the message for
// missing records and fallback the message for everything else.
func serviceError(err error, notFound, fallback string) *echo.HTTPError {
	he := echo.NewHTTPError(errorStatus(err), fallback).SetInternal(err)
	switch he.Code {
	case http.StatusNotFound:
		he.Message = notFound
	case http.StatusUnauthorized:
		he.Message = "Unauthorized"
	case http.StatusRequestEntityTooLarge:
		he.Message = "File too large"
	case http.StatusBadRequest:
		he.Message = err.Error()
	}
	return he
}
