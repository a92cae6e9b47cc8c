package handlers

import (
	"net/http"

	dom "catalog/internal/domain"
	"catalog/internal/dto"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create godoc
// @Summary      Create a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCommentRequest  true  "Comment body"
// @Success      201   {object}  dto.CommentResponse
// @Failure      400   {object}  map[string]string
// @Router       /comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cm, err := h.svc.Create(c.Request.Context(), req.Text, req.UserID, req.ItemID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentToResponse(cm))
}

// List godoc
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Param        offset  query  int  false  "Rows to skip (default 0)"
// @Param        limit   query  int  false  "Max rows to return (default 10)"
// @Success      200  {object}  dto.ListCommentsResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	offset, limit, ok := parsePage(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListCommentsResponse{Items: commentsToResponses(list)})
}

// GetByID godoc
// @Summary      Get a comment by ID
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  dto.CommentResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [get]
func (h *CommentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cm, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentToResponse(cm))
}

// Update godoc
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Comment ID"
// @Param        body  body      dto.UpdateCommentRequest  true  "Partial update"
// @Success      200   {object}  dto.CommentResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /comments/{id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cm, err := h.svc.Update(c.Request.Context(), id, dom.CommentPatch{
		Text:   req.Text,
		UserID: req.UserID,
		ItemID: req.ItemID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentToResponse(cm))
}

// Delete godoc
// @Summary      Delete a comment
// @Tags         comments
// @Param        id   path  int  true  "Comment ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func commentToResponse(cm dom.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        cm.ID,
		Text:      cm.Text,
		UserID:    cm.UserID,
		ItemID:    cm.ItemID,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

func commentsToResponses(list []dom.Comment) []dto.CommentResponse {
	out := make([]dto.CommentResponse, len(list))
	for i := range list {
		out[i] = commentToResponse(list[i])
	}
	return out
}
