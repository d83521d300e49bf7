// README: Base handler utilities (JSON helpers, body binding, error mapping).
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"ojoto/internal/http/middleware"
	"ojoto/internal/logging"
	"ojoto/internal/modules/trip"
	"ojoto/internal/modules/user"
	"ojoto/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// bindJSON decodes the body into dst; an empty body leaves dst zero-valued.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func callerID(c *gin.Context) types.ID {
	return types.ID(middleware.CallerUID(c))
}

// writeServiceError maps module errors to status codes. Unknown errors are
// logged and hidden behind a generic 500.
func writeServiceError(c *gin.Context, err error) {
	var ve *types.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, trip.ErrNotFound.Error())
	case errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, user.ErrNotFound.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, user.ErrInvalidCredentials.Error())
	case errors.Is(err, trip.ErrNoPassenger):
		writeError(c, http.StatusUnauthorized, "unauthenticated")
	default:
		logging.FromContext(c.Request.Context()).WithError(err).Error("request failed")
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
