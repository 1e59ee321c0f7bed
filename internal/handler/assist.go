package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/incident-desk/backend/internal/model"
	"github.com/incident-desk/backend/internal/service"
)

type AssistHandler struct {
	svc *service.AssistService
}

func NewAssistHandler(svc *service.AssistService) *AssistHandler {
	return &AssistHandler{svc: svc}
}

// InvokeLLM godoc
// @Summary Forward a prompt to the completion provider
// @Tags ai
// @Accept json
// @Produce json
// @Param request body model.InvokeLLMRequest true "Prompt payload"
// @Success 200 {object} model.InvokeLLMResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/ai/invoke-llm [post]
func (h *AssistHandler) InvokeLLM(c *gin.Context) {
	var req model.InvokeLLMRequest
	if !decodeBody(c, &req) {
		return
	}
	text, err := h.svc.InvokeLLM(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.InvokeLLMResponse{Text: text})
}

// RunFunction godoc
// @Summary Run a named AI action
// @Description automateIncidentResponse, generatePostIncidentReview, generateArticleFromIncident,
// @Description suggestKnowledgeArticles, generatePredictions
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Action name"
// @Param request body model.FunctionRequest false "Action payload"
// @Success 200 {object} object
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/functions/{name} [post]
func (h *AssistHandler) RunFunction(c *gin.Context, name string) {
	action, ok := h.svc.Action(name)
	if !ok {
		writeNotFound(c, "Unknown function")
		return
	}
	var req model.FunctionRequest
	if !decodeBody(c, &req) {
		return
	}
	res, err := action(c.Request.Context(), req, UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
