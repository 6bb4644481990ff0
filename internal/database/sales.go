package database

import (
	"errors"
	"fmt"

	"pointify-pos/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommitSale is the one multi-collection atomic operation: it inserts
// the sale record and decrements stock for every line inside a single
// transaction. Either everything lands or nothing does.
//
// Net profit is computed here from the line snapshots so the persisted
// figure can never drift from the items it was derived from. Stock is
// clamped at zero on over-decrement, matching the store's observable
// "never negative" invariant (the oversell is absorbed, not rejected).
func (s *Store) CommitSale(sale *models.Sale) error {
	if len(sale.Items) == 0 {
		return fmt.Errorf("%w: sale has no items", ErrTransactionFailed)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total, profit float64
		for _, item := range sale.Items {
			lineTotal := item.LineTotal()
			total += lineTotal
			profit += lineTotal - item.CostPrice*float64(item.Qty)
		}
		sale.Total = total
		sale.NetProfit = profit

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for _, item := range sale.Items {
			var product models.Product
			// Lock the row so nothing else reads the stale stock figure
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, item.ProductID).Error
			if err != nil {
				// A referenced product vanished: abort the whole unit
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}

			product.Stock -= item.Qty
			if product.Stock < 0 {
				product.Stock = 0
			}
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		// Whatever went wrong inside, callers see one failure mode:
		// the commit aborted and durable state is unchanged.
		if errors.Is(err, ErrTransactionFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	return nil
}
