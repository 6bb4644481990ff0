package database

import (
	"errors"
	"fmt"
	"log"

	"pointify-pos/internal/auth"
	"pointify-pos/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Default credentials seeded on first run. A bootstrap affordance,
// not a security boundary: operators are expected to change them.
const (
	DefaultAdminUsername = "Admin"
	DefaultAdminPassword = "123Admin"
)

// Store owns all durable state: the users, products, sales and
// settings collections inside one embedded SQLite file.
type Store struct {
	db *gorm.DB
}

// Open connects to the embedded database, syncs the schema and seeds
// the default admin when the users collection is empty.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Setting{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// seed ensures at least one account exists so the install is usable.
func (s *Store) seed() error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
		Name:         "Super Admin",
		Role:         "admin",
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Println("Seeded default admin user")
	return nil
}

// wrapErr maps gorm errors onto the store's error taxonomy.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConstraintViolation
	default:
		return err
	}
}
