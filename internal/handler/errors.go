package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/incident-desk/backend/internal/model"
	"github.com/incident-desk/backend/internal/service"
)

// writeError maps service errors to status codes:
// validation / provider 미설정 → 400, not found → 404, 그 외 → 500 (detail 포함)
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrProviderNotConfigured):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("[Server] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Internal error", Detail: err.Error()})
	}
}

func writeBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg})
}

func writeNotFound(c *gin.Context, msg string) {
	if msg == "" {
		msg = "Not found"
	}
	c.JSON(http.StatusNotFound, model.ErrorResponse{Error: msg})
}

func methodNotAllowed(c *gin.Context, allowed ...string) {
	c.Header("Allow", strings.Join(allowed, ", "))
	c.JSON(http.StatusMethodNotAllowed, model.ErrorResponse{Error: "Method not allowed"})
}

func recoverInternal(c *gin.Context, recovered any) {
	log.Printf("[Server] panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
		Error:  "Internal error",
		Detail: fmt.Sprint(recovered),
	})
}
