package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/incident-desk/backend/internal/model"
)

// 헬스체크 엔드포인트
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// Health godoc
// @Summary API health
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /api [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{OK: true, Message: "API online"})
}
