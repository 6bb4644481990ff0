package sales

import (
	"errors"
	"time"

	"pointify-pos/internal/cart"
	"pointify-pos/internal/database"
	"pointify-pos/internal/models"
)

// ErrEmptyCart - checkout refused before touching the store.
var ErrEmptyCart = errors.New("cart is empty")

// DefaultCustomer is used when the cashier leaves the name blank.
const DefaultCustomer = "Walk-in Customer"

// Settler turns carts into persisted sales.
type Settler struct {
	store *database.Store
	now   func() time.Time
}

func NewSettler(store *database.Store) *Settler {
	return &Settler{store: store, now: time.Now}
}

// Checkout commits the cart as one sale. Totals are recomputed from
// the lines at commit time, never trusted from a cached display
// figure. On success the persisted sale (carrying its assigned id) is
// returned and the cart is cleared; on failure the cart is left
// untouched so the cashier can retry.
func (s *Settler) Checkout(c *cart.Cart, customer, paymentMethod, cashier string) (*models.Sale, error) {
	items := c.Snapshot()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if customer == "" {
		customer = DefaultCustomer
	}

	sale := &models.Sale{
		Date:          s.now(),
		Items:         items,
		Customer:      customer,
		Cashier:       cashier,
		PaymentMethod: paymentMethod,
	}

	if err := s.store.CommitSale(sale); err != nil {
		return nil, err
	}

	c.Clear()
	return sale, nil
}
