// internal/api/v1/api.go
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tphakala/birdcatalog/internal/catalog"
	"github.com/tphakala/birdcatalog/internal/errors"
	"github.com/tphakala/birdcatalog/internal/imageprovider"
	"github.com/tphakala/birdcatalog/internal/logger"
)

// ImageFetcher is the part of the image cache the API depends on.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (imageprovider.Image, error)
}

// Controller manages the API routes and handlers
type Controller struct {
	Echo    *echo.Echo
	Group   *echo.Group
	Catalog *catalog.Catalog
	Images  ImageFetcher
	logger  logger.Logger
}

// Option is a functional option for configuring the Controller.
type Option func(*Controller)

// WithLogger sets the logger used for API errors.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates the API controller and registers its routes under /api/v1.
func New(e *echo.Echo, cat *catalog.Catalog, images ImageFetcher, opts ...Option) (*Controller, error) {
	if e == nil {
		return nil, errors.Newf("echo instance is required").
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	if cat == nil {
		return nil, errors.Newf("catalog is required").
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}

	c := &Controller{
		Echo:    e,
		Catalog: cat,
		Images:  images,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Global().Module("api")
	}

	c.Group = e.Group("/api/v1")
	c.initGroupRoutes()
	c.initSpeciesRoutes()
	c.initImageRoutes()

	return c, nil
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"` // Unique identifier for tracking this error
}

// NewErrorResponse creates a new API error response
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	errorStr := message
	if err != nil {
		errorStr = err.Error()
	}

	return &ErrorResponse{
		Error:         errorStr,
		Message:       message,
		Code:          code,
		CorrelationID: uuid.NewString(),
	}
}

// HandleError logs err with a fresh correlation ID and writes it as JSON.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	errorResp := NewErrorResponse(err, message, code)

	fields := []logger.Field{
		logger.String("correlation_id", errorResp.CorrelationID),
		logger.String("message", message),
		logger.Int("code", code),
		logger.String("path", ctx.Request().URL.Path),
		logger.String("method", ctx.Request().Method),
		logger.String("ip", ctx.RealIP()),
	}
	if err != nil {
		fields = append(fields, logger.Error(err))
	}

	log := c.logger.WithContext(ctx.Request().Context())
	if code >= http.StatusInternalServerError {
		log.Error("API error", fields...)
	} else {
		log.Debug("API error", fields...)
	}

	return ctx.JSON(code, errorResp)
}

// pathParam returns the named path parameter, unescaped when the request
// was routed on its raw path.
func pathParam(ctx echo.Context, name string) string {
	v := ctx.Param(name)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// wantsPreview reports whether the preview query flag is set.
func wantsPreview(ctx echo.Context) bool {
	switch ctx.QueryParam("preview") {
	case "1", "true", "yes":
		return true
	}
	return false
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
