package cart

import (
	"errors"
	"math"
	"sync"

	"pointify-pos/internal/models"
)

var (
	// ErrOutOfStock - the product has no stock left to sell.
	ErrOutOfStock = errors.New("out of stock")

	// ErrMaxStockReached - the requested quantity would exceed the
	// live stock figure.
	ErrMaxStockReached = errors.New("max stock reached")

	// ErrInvalidDiscount - negative or non-numeric discount input.
	ErrInvalidDiscount = errors.New("invalid discount amount")

	// ErrDiscountExceedsMargin - the discount would sell the line at
	// or below its cost basis.
	ErrDiscountExceedsMargin = errors.New("discount exceeds profit margin")

	// ErrLineNotFound - no cart line for that product.
	ErrLineNotFound = errors.New("cart line not found")
)

// ProductReader is the slice of the record store the cart needs: a
// live stock read at every mutation.
type ProductReader interface {
	GetProduct(id uint) (*models.Product, error)
}

// Line is one product entry in the active cart. Product fields are a
// snapshot taken when the line was added; Discount is the TOTAL
// amount off the line, not a per-unit figure.
type Line struct {
	ProductID  uint    `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CostPrice  float64 `json:"costPrice"`
	StockAtAdd int     `json:"stock"`
	Qty        int     `json:"qty"`
	Discount   float64 `json:"discount"`
}

// Total is the line's charge after discount.
func (l Line) Total() float64 {
	return l.Price*float64(l.Qty) - l.Discount
}

func (l Line) costBasis() float64 {
	return l.CostPrice * float64(l.Qty)
}

// Cart is the in-memory, single-session order being built. It is
// never persisted; it dies on clear, checkout or logout.
type Cart struct {
	mu       sync.Mutex
	products ProductReader
	lines    []Line
}

func New(products ProductReader) *Cart {
	return &Cart{products: products}
}

// AddLine puts one unit of the product in the cart, or bumps the
// existing line's quantity. Stock is re-read live from the store.
func (c *Cart) AddLine(productID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.products.GetProduct(productID)
	if err != nil {
		return err
	}
	if p.Stock <= 0 {
		return ErrOutOfStock
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			if c.lines[i].Qty+1 > p.Stock {
				return ErrMaxStockReached
			}
			c.lines[i].Qty++
			return nil
		}
	}

	c.lines = append(c.lines, Line{
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		CostPrice:  p.CostPrice,
		StockAtAdd: p.Stock,
		Qty:        1,
	})
	return nil
}

// QtyChange reports what a quantity change did beyond the obvious.
type QtyChange struct {
	Removed          bool    `json:"removed"`
	DiscountAdjusted bool    `json:"discountAdjusted"`
	NewDiscount      float64 `json:"newDiscount,omitempty"`
}

// ChangeQty adjusts a line's quantity by delta. A result of zero or
// less removes the line. Exceeding live stock is refused. If the
// line's discount would now break the profit floor it is clamped down
// to the largest still-valid value and the change is reported as an
// informational notice, not an error.
func (c *Cart) ChangeQty(productID uint, delta int) (*QtyChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrLineNotFound
	}

	newQty := c.lines[idx].Qty + delta
	if newQty <= 0 {
		c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
		return &QtyChange{Removed: true}, nil
	}

	p, err := c.products.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	if newQty > p.Stock {
		return nil, ErrMaxStockReached
	}

	line := &c.lines[idx]
	line.Qty = newQty

	change := &QtyChange{}
	if line.Discount > 0 && line.Total() <= line.costBasis() {
		// Shrink the discount to keep at least one currency unit of
		// profit on the line rather than rejecting the quantity change.
		maxDiscount := line.Price*float64(line.Qty) - line.costBasis() - 1
		if maxDiscount < 0 {
			maxDiscount = 0
		}
		line.Discount = maxDiscount
		change.DiscountAdjusted = true
		change.NewDiscount = maxDiscount
	}
	return change, nil
}

// RemoveLine drops a line outright.
func (c *Cart) RemoveLine(productID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// ApplyDiscount sets the TOTAL discount for a line. The discounted
// line must still sell strictly above its cost basis.
func (c *Cart) ApplyDiscount(productID uint, amount float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidDiscount
	}

	for i := range c.lines {
		line := &c.lines[i]
		if line.ProductID != productID {
			continue
		}
		if line.Price*float64(line.Qty)-amount <= line.costBasis() {
			return ErrDiscountExceedsMargin
		}
		line.Discount = amount
		return nil
	}
	return ErrLineNotFound
}

// Clear empties the cart unconditionally. Confirmation is the UI's
// problem.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Subtotal sums (price*qty - discount) across lines.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum float64
	for _, l := range c.lines {
		sum += l.Total()
	}
	return sum
}

// Total equals Subtotal: there is no separate tax step.
func (c *Cart) Total() float64 {
	return c.Subtotal()
}

// Snapshot converts the lines into sale items for settlement.
func (c *Cart) Snapshot() []models.SaleItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.SaleItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, models.SaleItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			CostPrice: l.CostPrice,
			Qty:       l.Qty,
			Discount:  l.Discount,
		})
	}
	return items
}
