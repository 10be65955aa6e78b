package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hadi891/CareerCompass/internal/delivery/http/response"
	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/pkg/apperror"
	"github.com/Hadi891/CareerCompass/pkg/logger"
)

// ErrorHandler translates errors appended to the gin context into the
// response envelope. Pipeline sentinels get their fixed status codes;
// everything unrecognized is logged server-side and surfaced as a
// generic 500 so internals never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	log := logger.With("http")

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		switch {
		case errors.Is(err, domain.ErrMalformedResponse):
			response.Error(c, http.StatusUnprocessableEntity,
				"The language model returned an unusable reply. Please try again.", nil)
		case errors.Is(err, domain.ErrExtractionFailed):
			response.Error(c, http.StatusUnprocessableEntity,
				"The uploaded document could not be read.", nil)
		case errors.Is(err, domain.ErrCollaboratorTimeout):
			response.Error(c, http.StatusGatewayTimeout,
				"The language model took too long to respond.", nil)
		case errors.Is(err, domain.ErrCollaboratorUnavailable):
			response.Error(c, http.StatusBadGateway,
				"The language model is unavailable.", nil)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
		default:
			log.Error("unhandled error", "path", c.Request.URL.Path, "error", err)
			response.Error(c, http.StatusInternalServerError,
				"An unexpected error occurred. Please try again later.", nil)
		}
	}
}
