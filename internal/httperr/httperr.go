package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusOf maps a business error kind to its HTTP status.
func StatusOf(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// Respond writes err to the client. Business errors keep their code and
// message; anything else is logged and reported as a generic 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		Write(c, StatusOf(be.Kind), be.Code, msg)
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("unhandled error")

	Internal(c, "internal_error", "Internal server error")
}
