package handlers

import (
	"net/http"
	"strconv"

	"pointify-pos/internal/receipt"
	"pointify-pos/internal/settings"

	"github.com/gin-gonic/gin"
)

// cartOf resolves the cart key for the acting session.
func (h *Handlers) cartOf(c *gin.Context) string {
	return c.GetString("username")
}

// --- GET: Current cart lines and totals ---
func (h *Handlers) GetCart(c *gin.Context) {
	ct := h.Carts.Get(h.cartOf(c))
	c.JSON(http.StatusOK, gin.H{
		"lines":    ct.Lines(),
		"subtotal": ct.Subtotal(),
		"total":    ct.Total(),
	})
}

type addLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// --- POST: Add one unit of a product ---
func (h *Handlers) AddToCart(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ct := h.Carts.Get(h.cartOf(c))
	if err := ct.AddLine(req.ProductID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": ct.Lines(), "total": ct.Total()})
}

type changeQtyRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// --- PUT: Adjust a line's quantity ---
func (h *Handlers) ChangeQty(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}
	var req changeQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ct := h.Carts.Get(h.cartOf(c))
	change, err := ct.ChangeQty(uint(productID), req.Delta)
	if err != nil {
		fail(c, err)
		return
	}

	resp := gin.H{"lines": ct.Lines(), "total": ct.Total(), "change": change}
	if change.DiscountAdjusted {
		// Informational, not an error: the discount shrank to keep
		// the line above cost
		resp["notice"] = "Discount adjusted to protection limit"
	}
	c.JSON(http.StatusOK, resp)
}

type discountRequest struct {
	Amount float64 `json:"amount"`
}

// --- PUT: Set a line's TOTAL discount ---
func (h *Handlers) ApplyDiscount(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ct := h.Carts.Get(h.cartOf(c))
	if err := ct.ApplyDiscount(uint(productID), req.Amount); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": ct.Lines(), "total": ct.Total()})
}

// --- DELETE: Remove a line ---
func (h *Handlers) RemoveLine(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}
	ct := h.Carts.Get(h.cartOf(c))
	ct.RemoveLine(uint(productID))
	c.JSON(http.StatusOK, gin.H{"lines": ct.Lines(), "total": ct.Total()})
}

// --- DELETE: Empty the cart ---
func (h *Handlers) ClearCart(c *gin.Context) {
	ct := h.Carts.Get(h.cartOf(c))
	ct.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

type checkoutRequest struct {
	Customer      string `json:"customer"`
	PaymentMethod string `json:"paymentMethod"`
}

// --- POST: Settle the cart as one sale ---
func (h *Handlers) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "CASH"
	}

	cashier := h.cartOf(c)
	ct := h.Carts.Get(cashier)

	sale, err := h.Settler.Checkout(ct, req.Customer, req.PaymentMethod, cashier)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale completed successfully",
		"sale":    sale,
	})
}

// --- GET: Printable PDF receipt for a persisted sale ---
func (h *Handlers) GetReceipt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Sale ID"})
		return
	}

	sale, err := h.Store.GetSale(uint(id))
	if err != nil {
		fail(c, err)
		return
	}

	profile, err := settings.Load(h.Store)
	if err != nil {
		fail(c, err)
		return
	}

	pdf, err := receipt.Render(sale, profile)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", pdf)
}
