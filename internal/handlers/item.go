package handlers

import (
	"net/http"

	dom "catalog/internal/domain"
	"catalog/internal/dto"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	svc *service.ItemService
}

func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// Create godoc
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  true  "Item body"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  map[string]string
// @Router       /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	it, err := h.svc.Create(c.Request.Context(), req.Name, req.CategoryID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemToResponse(it))
}

// List godoc
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        offset  query  int  false  "Rows to skip (default 0)"
// @Param        limit   query  int  false  "Max rows to return (default 10)"
// @Success      200  {object}  dto.ListItemsResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	offset, limit, ok := parsePage(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListItemsResponse{Items: itemsToResponses(list)})
}

// GetByID godoc
// @Summary      Get an item by ID
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	it, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemToResponse(it))
}

// Update godoc
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Item ID"
// @Param        body  body      dto.UpdateItemRequest  true  "Partial update"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /items/{id} [patch]
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	it, err := h.svc.Update(c.Request.Context(), id, dom.ItemPatch{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemToResponse(it))
}

// Delete godoc
// @Summary      Delete an item
// @Tags         items
// @Param        id   path  int  true  "Item ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
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

// Tags godoc
// @Summary      List tags attached to an item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  dto.ListTagsResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id}/tags [get]
func (h *ItemHandler) Tags(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tags, err := h.svc.Tags(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTagsResponse{Items: tagsToResponses(tags)})
}

// AttachTag godoc
// @Summary      Attach a tag to an item
// @Tags         items
// @Param        id      path  int  true  "Item ID"
// @Param        tag_id  path  int  true  "Tag ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id}/tags/{tag_id} [post]
func (h *ItemHandler) AttachTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseID(c, "tag_id")
	if !ok {
		return
	}
	if err := h.svc.AttachTag(c.Request.Context(), id, tagID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DetachTag godoc
// @Summary      Detach a tag from an item
// @Tags         items
// @Param        id      path  int  true  "Item ID"
// @Param        tag_id  path  int  true  "Tag ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id}/tags/{tag_id} [delete]
func (h *ItemHandler) DetachTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseID(c, "tag_id")
	if !ok {
		return
	}
	removed, err := h.svc.DetachTag(c.Request.Context(), id, tagID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func itemToResponse(it dom.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:         it.ID,
		Name:       it.Name,
		CategoryID: it.CategoryID,
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
}

func itemsToResponses(list []dom.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, len(list))
	for i := range list {
		out[i] = itemToResponse(list[i])
	}
	return out
}
