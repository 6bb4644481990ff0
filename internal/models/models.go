package models

import (
	"time"
)

// User - The person operating the till
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string `json:"-"` // Never return this in JSON
	Name         string `json:"name"`
	Role         string `json:"role"` // 'admin', 'manager', 'cashier'
}

// Product - The Inventory
type Product struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `json:"name"`
	Barcode    *string `gorm:"uniqueIndex" json:"barcode,omitempty"` // pointer so absent barcodes don't collide
	Price      float64 `json:"price"`
	CostPrice  float64 `json:"costPrice"`
	Stock      int     `json:"stock"`
	AlertLevel int     `json:"alertLevel"`
	Image      string  `json:"image,omitempty"` // base64 blob handed over by the UI
}

// LowStock reports whether the product is at or below its alert threshold.
func (p Product) LowStock() bool {
	level := p.AlertLevel
	if level == 0 {
		level = 5
	}
	return p.Stock <= level
}

// Sale - The Transaction Header. Immutable once created: there is no
// refund or void flow, so nothing ever updates or deletes a sale.
type Sale struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Date          time.Time  `json:"date"`
	Items         []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
	Total         float64    `json:"total"`
	NetProfit     float64    `json:"netProfit"`
	Customer      string     `json:"customer"`
	Cashier       string     `json:"cashier"` // username of the acting cashier
	PaymentMethod string     `json:"paymentMethod"`
}

// SaleItem - A snapshot of one cart line at settlement time.
type SaleItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	SaleID    uint    `json:"sale_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // unit sell price at time of sale
	CostPrice float64 `json:"costPrice"`
	Qty       int     `json:"qty"`
	Discount  float64 `json:"discount"` // TOTAL amount off this line, not per unit
}

// LineTotal is the line's charge after discount.
func (i SaleItem) LineTotal() float64 {
	return i.Price*float64(i.Qty) - i.Discount
}

// Setting - one key/value row of store configuration. Keyed by Key,
// not by a numeric id.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `json:"value"`
}
