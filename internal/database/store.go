package database

import (
	"pointify-pos/internal/models"
)

// --- Users ---

func (s *Store) AddUser(u *models.User) error {
	return wrapErr(s.db.Create(u).Error)
}

func (s *Store) GetUser(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

// GetUserByUsername looks up by exact, case-sensitive username.
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *Store) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, wrapErr(err)
	}
	return users, nil
}

func (s *Store) PutUser(u *models.User) error {
	return wrapErr(s.db.Save(u).Error)
}

func (s *Store) DeleteUser(id uint) error {
	return wrapErr(s.db.Delete(&models.User{}, id).Error)
}

// CountAdmins counts accounts holding the admin role. Used by the
// team-management guard that refuses to delete the last admin.
func (s *Store) CountAdmins() (int64, error) {
	var n int64
	err := s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&n).Error
	return n, wrapErr(err)
}

// --- Products ---

func (s *Store) AddProduct(p *models.Product) error {
	return wrapErr(s.db.Create(p).Error)
}

func (s *Store) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

// GetProductByBarcode backs the scan flow: barcode scanners send the
// full code followed by Enter, so matches are exact.
func (s *Store) GetProductByBarcode(barcode string) (*models.Product, error) {
	var p models.Product
	if err := s.db.Where("barcode = ?", barcode).First(&p).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

// GetAllProducts returns every product. Order is not guaranteed to be
// insertion order; callers that care must sort.
func (s *Store) GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, wrapErr(err)
	}
	return products, nil
}

// GetLowStockProducts lists products at or below their alert level.
func (s *Store) GetLowStockProducts() ([]models.Product, error) {
	products, err := s.GetAllProducts()
	if err != nil {
		return nil, err
	}
	var low []models.Product
	for _, p := range products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

func (s *Store) PutProduct(p *models.Product) error {
	return wrapErr(s.db.Save(p).Error)
}

func (s *Store) DeleteProduct(id uint) error {
	return wrapErr(s.db.Delete(&models.Product{}, id).Error)
}

// --- Sales ---

func (s *Store) GetSale(id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Preload("Items").First(&sale, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &sale, nil
}

func (s *Store) GetAllSales() ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.db.Preload("Items").Find(&sales).Error; err != nil {
		return nil, wrapErr(err)
	}
	return sales, nil
}

// --- Settings ---

// PutSetting upserts by the natural key, not a numeric id.
func (s *Store) PutSetting(key, value string) error {
	return wrapErr(s.db.Save(&models.Setting{Key: key, Value: value}).Error)
}

func (s *Store) GetSetting(key string) (string, error) {
	var setting models.Setting
	if err := s.db.First(&setting, "key = ?", key).Error; err != nil {
		return "", wrapErr(err)
	}
	return setting.Value, nil
}

func (s *Store) GetAllSettings() ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, wrapErr(err)
	}
	return settings, nil
}

func (s *Store) DeleteSetting(key string) error {
	return wrapErr(s.db.Delete(&models.Setting{}, "key = ?", key).Error)
}
