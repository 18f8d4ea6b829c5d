package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// itemHandler handles HTTP requests related to stock items.
type itemHandler struct {
	itemService portssvc.ItemSvcFacade
}

// newItemHandler creates a new itemHandler.
func newItemHandler(is portssvc.ItemSvcFacade) *itemHandler {
	return &itemHandler{itemService: is}
}

// registerItemRoutes registers routes related to items.
func registerItemRoutes(rg *gin.RouterGroup, itemService portssvc.ItemSvcFacade) {
	h := newItemHandler(itemService)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:itemID", h.getItem)
		items.PATCH("/:itemID", h.updateItem)
		items.DELETE("/:itemID", h.deactivateItem)
		items.POST("/:itemID/adjust-stock", h.adjustStock)
	}
}

// createItem godoc
// @Summary Create a stock item
// @Tags items
// @Accept json
// @Produce json
// @Param item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Item already exists"
// @Security BearerAuth
// @Router /items [post]
func (h *itemHandler) createItem(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received request to create item", slog.String("item_name", req.Name))

	item, err := h.itemService.CreateItem(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// getItem godoc
// @Summary Get an item by ID
// @Tags items
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{itemID} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	_, companyID, ok := session(c)
	if !ok {
		return
	}
	item, err := h.itemService.GetItem(c.Request.Context(), companyID, c.Param("itemID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// listItems godoc
// @Summary List items
// @Description Lists active items; lowStock=true keeps only those at or below their reorder level
// @Tags items
// @Produce json
// @Param lowStock query bool false "Only items at or below their minimum stock level"
// @Success 200 {array} dto.ItemResponse
// @Security BearerAuth
// @Router /items [get]
func (h *itemHandler) listItems(c *gin.Context) {
	_, companyID, ok := session(c)
	if !ok {
		return
	}
	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	items, err := h.itemService.ListItems(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "Failed to list items")
		return
	}
	resp := make([]dto.ItemResponse, len(items))
	for i := range items {
		resp[i] = dto.ToItemResponse(&items[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateItem godoc
// @Summary Update an item
// @Tags items
// @Accept json
// @Produce json
// @Param itemID path string true "Item ID"
// @Param item body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{itemID} [patch]
func (h *itemHandler) updateItem(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), companyID, c.Param("itemID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// deactivateItem godoc
// @Summary Deactivate an item
// @Tags items
// @Param itemID path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{itemID} [delete]
func (h *itemHandler) deactivateItem(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	if err := h.itemService.DeactivateItem(c.Request.Context(), companyID, c.Param("itemID"), userID); err != nil {
		respondError(c, err, "Failed to deactivate item")
		return
	}
	c.Status(http.StatusNoContent)
}

// adjustStock godoc
// @Summary Adjust stock
// @Description Moves stock by a signed delta outside any voucher. Stock never drops below zero.
// @Tags items
// @Accept json
// @Produce json
// @Param itemID path string true "Item ID"
// @Param adjustment body dto.AdjustStockRequest true "Signed quantity"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Security BearerAuth
// @Router /items/{itemID}/adjust-stock [post]
func (h *itemHandler) adjustStock(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.itemService.AdjustStock(c.Request.Context(), companyID, c.Param("itemID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to adjust stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}
