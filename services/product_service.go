package services

import (
	"gorm.io/gorm"

	"shuno-backend/models"
)

type ProductService struct {
	DB *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{DB: db}
}

// GetActive returns properties visible on the public site.
func (s *ProductService) GetActive() ([]models.Property, error) {
	var products []models.Property
	err := s.DB.Where("is_active = ?", true).Order("id DESC").Find(&products).Error
	return products, err
}

// GetAll returns every property including deactivated ones (admin view).
func (s *ProductService) GetAll() ([]models.Property, error) {
	var products []models.Property
	err := s.DB.Order("id DESC").Find(&products).Error
	return products, err
}

func (s *ProductService) GetByID(id uint) (*models.Property, error) {
	var product models.Property
	if err := s.DB.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) GetByLocation(location string) ([]models.Property, error) {
	var products []models.Property
	err := s.DB.
		Where("is_active = ?", true).
		Where("LOWER(location) = LOWER(?)", location).
		Order("id DESC").
		Find(&products).Error
	return products, err
}

func (s *ProductService) Create(product *models.Property) error {
	product.IsActive = true
	return s.DB.Create(product).Error
}

func (s *ProductService) Update(id uint, update *models.Property) (*models.Property, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = update.Name
	product.Location = update.Location
	product.Description = update.Description
	product.Price = update.Price
	product.MaxGuests = update.MaxGuests
	product.Bedrooms = update.Bedrooms
	product.Bathrooms = update.Bathrooms
	if update.Amenities != nil {
		product.Amenities = update.Amenities
	}
	if update.Images != nil {
		product.Images = update.Images
	}

	if err := s.DB.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete deactivates the property. Orders and price periods keep their
// foreign keys, so rows are never removed.
func (s *ProductService) Delete(id uint) error {
	result := s.DB.Model(&models.Property{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
