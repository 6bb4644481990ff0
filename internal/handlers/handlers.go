package handlers

import (
	"errors"
	"net/http"

	"pointify-pos/internal/auth"
	"pointify-pos/internal/cart"
	"pointify-pos/internal/database"
	"pointify-pos/internal/reports"
	"pointify-pos/internal/sales"

	"github.com/gin-gonic/gin"
)

// Handlers is the HTTP boundary over the core. It owns no business
// rules; it binds input, calls into the core packages and translates
// their errors to status codes.
type Handlers struct {
	Store   *database.Store
	Tokens  *auth.JWTManager
	Carts   *cart.Manager
	Settler *sales.Settler
	Reports *reports.Aggregator
}

func New(store *database.Store, tokens *auth.JWTManager, carts *cart.Manager,
	settler *sales.Settler, aggregator *reports.Aggregator) *Handlers {
	return &Handlers{
		Store:   store,
		Tokens:  tokens,
		Carts:   carts,
		Settler: settler,
		Reports: aggregator,
	}
}

// fail translates a core error into an HTTP response.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound), errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrConstraintViolation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrOutOfStock),
		errors.Is(err, cart.ErrMaxStockReached),
		errors.Is(err, cart.ErrInvalidDiscount),
		errors.Is(err, cart.ErrDiscountExceedsMargin),
		errors.Is(err, sales.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrAuthFailure):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrTransactionFailed):
		c.JSON(http.StatusConflict, gin.H{"error": "Transaction failed, nothing was charged"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
