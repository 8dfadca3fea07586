package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fencyatf/Products-Backend/internal/database"
	"github.com/fencyatf/Products-Backend/internal/models"
	"github.com/fencyatf/Products-Backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the catalog CRUD endpoints.
type ProductHandler struct {
	Store database.ProductStore
	Log   *slog.Logger
}

// NewProductHandler builds the catalog handlers.
func NewProductHandler(store database.ProductStore, log *slog.Logger) *ProductHandler {
	return &ProductHandler{Store: store, Log: log}
}

type createProductReq struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

// storeError maps a store failure to a response. Anything that is not a
// bad id or a miss is reported as 400, as clients have always seen it.
func (h *ProductHandler) storeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, database.ErrInvalidID):
		util.Error(c, http.StatusBadRequest, util.KindBadRequest, "invalid product id")
	case errors.Is(err, database.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.KindNotFound, "Product not found")
	default:
		h.Log.ErrorContext(c.Request.Context(), op, "error", err)
		util.Error(c, http.StatusBadRequest, util.KindPersistence, op+" failed")
	}
}

// ListProducts GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context())
	if err != nil {
		h.storeError(c, "list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.KindBadRequest, "invalid product body")
		return
	}

	p := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := h.Store.CreateProduct(c.Request.Context(), &p); err != nil {
		h.storeError(c, "create product", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetProduct GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.Store.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, "get product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProduct PATCH /products/:id applies only the fields present in the
// body and returns the product as stored afterwards.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.Error(c, http.StatusBadRequest, util.KindBadRequest, "invalid product body")
		return
	}

	p, err := h.Store.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.storeError(c, "update product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.Store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, "delete product", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// CountAbovePrice GET /products/count/:price answers [{"productCount": n}].
func (h *ProductHandler) CountAbovePrice(c *gin.Context) {
	price, err := util.ParsePrice(c.Param("price"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.KindBadRequest, "price must be a number")
		return
	}

	n, err := h.Store.CountProductsAbovePrice(c.Request.Context(), price)
	if err != nil {
		h.storeError(c, "count products", err)
		return
	}
	c.JSON(http.StatusOK, []gin.H{{"productCount": n}})
}
