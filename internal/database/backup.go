package database

import (
	"encoding/json"
	"fmt"

	"pointify-pos/internal/models"

	"gorm.io/gorm"
)

// backupUser mirrors models.User but carries the credential hash,
// which the regular JSON shape deliberately hides. A restored backup
// must reproduce accounts field-for-field.
type backupUser struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// Snapshot is the backup file format: one JSON object whose top-level
// keys are exactly the four collection names. Unknown keys in an
// imported file are simply dropped by the decoder.
type Snapshot struct {
	Users    []backupUser     `json:"users"`
	Products []models.Product `json:"products"`
	Sales    []models.Sale    `json:"sales"`
	Settings []models.Setting `json:"settings"`
}

// ExportAll dumps all four collections as one snapshot.
func (s *Store) ExportAll() ([]byte, error) {
	var snap Snapshot

	users, err := s.GetAllUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		snap.Users = append(snap.Users, backupUser{
			ID:           u.ID,
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Name:         u.Name,
			Role:         u.Role,
		})
	}

	if snap.Products, err = s.GetAllProducts(); err != nil {
		return nil, err
	}
	if snap.Sales, err = s.GetAllSales(); err != nil {
		return nil, err
	}
	if snap.Settings, err = s.GetAllSettings(); err != nil {
		return nil, err
	}

	return json.Marshal(snap)
}

// ImportAll clears each collection and reinserts every record from the
// snapshot. The whole restore runs inside one transaction so a corrupt
// file cannot leave the store half-replaced.
func (s *Store) ImportAll(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode backup: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.SaleItem{}, &models.Sale{}, &models.Product{},
			&models.User{}, &models.Setting{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		for _, bu := range snap.Users {
			u := models.User{
				ID:           bu.ID,
				Username:     bu.Username,
				PasswordHash: bu.PasswordHash,
				Name:         bu.Name,
				Role:         bu.Role,
			}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}
		for i := range snap.Products {
			if err := tx.Create(&snap.Products[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Sales {
			if err := tx.Create(&snap.Sales[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Settings {
			if err := tx.Save(&snap.Settings[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
