package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/incident-desk/backend/internal/model"
	"github.com/incident-desk/backend/internal/registry"
	"github.com/incident-desk/backend/internal/service"
)

type RecordHandler struct {
	svc *service.RecordService
}

func NewRecordHandler(svc *service.RecordService) *RecordHandler {
	return &RecordHandler{svc: svc}
}

// List godoc
// @Summary List entity records
// @Tags records
// @Produce json
// @Param entity path string true "Entity model name or alias (e.g. incidents)"
// @Param _sort query string false "Sort field, '-' prefix for descending (e.g. -created_date)"
// @Param _limit query int false "Maximum number of records (max 500)"
// @Success 200 {array} object
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/{entity} [get]
func (h *RecordHandler) List(c *gin.Context, e *registry.Entity) {
	res, err := h.svc.List(c.Request.Context(), e, c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Create godoc
// @Summary Create an entity record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entity path string true "Entity model name or alias"
// @Param request body object true "snake_case record fields"
// @Success 200 {object} object
// @Failure 400 {object} model.ErrorResponse
// @Router /api/{entity} [post]
func (h *RecordHandler) Create(c *gin.Context, e *registry.Entity) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	res, err := h.svc.Create(c.Request.Context(), e, body, UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get godoc
// @Summary Get an entity record
// @Tags records
// @Produce json
// @Param entity path string true "Entity model name or alias"
// @Param id path string true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} model.ErrorResponse
// @Router /api/{entity}/{id} [get]
func (h *RecordHandler) Get(c *gin.Context, e *registry.Entity, id string) {
	res, err := h.svc.Get(c.Request.Context(), e, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary Update an entity record (only supplied fields change)
// @Tags records
// @Accept json
// @Produce json
// @Param entity path string true "Entity model name or alias"
// @Param id path string true "Record ID"
// @Param request body object true "snake_case record fields"
// @Success 200 {object} object
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/{entity}/{id} [put]
// @Router /api/{entity}/{id} [patch]
func (h *RecordHandler) Update(c *gin.Context, e *registry.Entity, id string) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	res, err := h.svc.Update(c.Request.Context(), e, id, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete godoc
// @Summary Delete an entity record
// @Tags records
// @Produce json
// @Param entity path string true "Entity model name or alias"
// @Param id path string true "Record ID"
// @Success 200 {object} model.OKResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/{entity}/{id} [delete]
func (h *RecordHandler) Delete(c *gin.Context, e *registry.Entity, id string) {
	if err := h.svc.Delete(c.Request.Context(), e, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.OKResponse{OK: true})
}

// bindBody decodes a JSON object body. An empty body is treated as {}.
func bindBody(c *gin.Context) (map[string]any, bool) {
	body := map[string]any{}
	if !decodeBody(c, &body) {
		return nil, false
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, true
}

func decodeBody(c *gin.Context, dst any) bool {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeBadRequest(c, "Invalid request body")
		return false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		writeBadRequest(c, "Invalid JSON body")
		return false
	}
	return true
}
