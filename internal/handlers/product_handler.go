package handlers

import (
	"net/http"
	"strconv"

	"pointify-pos/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: List all products ---
func (h *Handlers) GetProducts(c *gin.Context) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- GET: Exact barcode lookup for the scan flow ---
func (h *Handlers) ScanProduct(c *gin.Context) {
	product, err := h.Store.GetProductByBarcode(c.Param("barcode"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- GET: Products at or below their alert level ---
func (h *Handlers) GetLowStock(c *gin.Context) {
	products, err := h.Store.GetLowStockProducts()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- POST: Add a new product ---
func (h *Handlers) AddProduct(c *gin.Context) {
	var newProduct models.Product
	if err := c.ShouldBindJSON(&newProduct); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if newProduct.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
		return
	}

	if err := h.Store.AddProduct(&newProduct); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newProduct)
}

// --- PUT: Update fields of an existing product ---
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	product, err := h.Store.GetProduct(uint(id))
	if err != nil {
		fail(c, err)
		return
	}

	// Bind over the loaded record so the request only needs to carry
	// the fields being changed
	if err := c.ShouldBindJSON(product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	product.ID = uint(id)
	if product.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
		return
	}

	if err := h.Store.PutProduct(product); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE: Remove a product ---
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	if err := h.Store.DeleteProduct(uint(id)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
