package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medingen/recon_api/internal/service"
	"github.com/medingen/recon_api/internal/utils"
)

// ProductHandler exposes the catalog grid: listing with stock tabs, search,
// create, optimistic field edits, delete, unmatch and export.
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GetProducts refreshes the catalog from the backend and returns it
// filtered by the tab query parameter.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	if _, err := h.catalogService.Load(c.Request.Context()); err != nil {
		utils.Error(c, 502, "GATEWAY_ERROR", "Failed to load products")
		return
	}

	tab := c.DefaultQuery("tab", service.TabAll)
	products := h.catalogService.Products(tab)
	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// SearchProducts queries the catalog backend.
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.Error(c, 400, "INVALID_REQUEST", "Search term required")
		return
	}

	products, err := h.catalogService.Search(c.Request.Context(), query)
	if err != nil {
		utils.Error(c, 502, "GATEWAY_ERROR", "Failed to search products")
		return
	}
	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct inserts a new catalog record from a field map.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if name, _ := fields["name"].(string); name == "" {
		utils.Error(c, 400, "VALIDATION_ERROR", "name is required")
		return
	}

	productID, err := h.catalogService.Create(c.Request.Context(), fields)
	if err != nil {
		utils.Error(c, 502, "GATEWAY_ERROR", err.Error())
		return
	}
	utils.Success(c, 201, "Product created successfully", gin.H{
		"product_id": productID,
	})
}

// EditField applies an optimistic single-field edit. On remote failure the
// pre-edit value has already been restored; the error is surfaced for the
// operator.
func (h *ProductHandler) EditField(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	var req struct {
		Field string `json:"field" binding:"required"`
		Value any    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.catalogService.SetField(c.Request.Context(), productID, req.Field, req.Value); err != nil {
		switch {
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case errors.Is(err, utils.ErrInvalidField):
			utils.Error(c, 400, "INVALID_FIELD", "Field is not editable")
		default:
			utils.Error(c, 502, "GATEWAY_ERROR", err.Error())
		}
		return
	}
	utils.Success(c, 200, "Product updated successfully", nil)
}

// DeleteProduct removes a catalog record. Confirmation happens in the UI.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), productID); err != nil {
		utils.Error(c, 502, "GATEWAY_ERROR", err.Error())
		return
	}
	utils.Success(c, 200, "Product deleted successfully", nil)
}

// UnmatchProduct clears a product's linked external name.
func (h *ProductHandler) UnmatchProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	if err := h.catalogService.Unmatch(c.Request.Context(), productID); err != nil {
		utils.Error(c, 502, "GATEWAY_ERROR", err.Error())
		return
	}
	utils.Success(c, 200, "Product unmatched successfully", nil)
}

// ExportProducts streams the catalog spreadsheet from the backend.
func (h *ProductHandler) ExportProducts(c *gin.Context) {
	blob, err := h.catalogService.Export(c.Request.Context())
	if err != nil {
		utils.Error(c, 502, "GATEWAY_ERROR", "Failed to export products")
		return
	}

	filename := fmt.Sprintf("products_export_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", blob)
}
