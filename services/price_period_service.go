package services

import (
	"gorm.io/gorm"

	"shuno-backend/models"
)

type PricePeriodService struct {
	DB *gorm.DB
}

func NewPricePeriodService(db *gorm.DB) *PricePeriodService {
	return &PricePeriodService{DB: db}
}

func (s *PricePeriodService) GetAll() ([]models.PricePeriod, error) {
	var periods []models.PricePeriod
	err := s.DB.Preload("Product").Order("id ASC").Find(&periods).Error
	return periods, err
}

func (s *PricePeriodService) GetByID(id uint) (*models.PricePeriod, error) {
	var period models.PricePeriod
	if err := s.DB.First(&period, id).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func (s *PricePeriodService) GetByProduct(productID uint) ([]models.PricePeriod, error) {
	var periods []models.PricePeriod
	err := s.DB.Where("product_id = ?", productID).Order("id ASC").Find(&periods).Error
	return periods, err
}

func (s *PricePeriodService) Create(period *models.PricePeriod) error {
	if !period.EndDate.After(period.StartDate) {
		return ErrInvalidDateRange
	}
	// the owning property must exist
	var product models.Property
	if err := s.DB.First(&product, period.ProductID).Error; err != nil {
		return err
	}
	return s.DB.Create(period).Error
}

func (s *PricePeriodService) Update(id uint, update *models.PricePeriod) (*models.PricePeriod, error) {
	if !update.EndDate.After(update.StartDate) {
		return nil, ErrInvalidDateRange
	}

	period, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	period.StartDate = update.StartDate
	period.EndDate = update.EndDate
	period.Price = update.Price
	period.Name = update.Name

	if err := s.DB.Save(period).Error; err != nil {
		return nil, err
	}
	return period, nil
}

func (s *PricePeriodService) Delete(id uint) error {
	result := s.DB.Delete(&models.PricePeriod{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
