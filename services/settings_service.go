package services

import (
	"errors"

	"gorm.io/gorm"

	"shuno-backend/models"
)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Get returns the singleton settings row, creating it when missing.
func (s *SettingsService) Get() (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := s.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.SiteSettings{SiteName: "Shu-no"}
		if err := s.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *SettingsService) Update(update *models.SiteSettings) (*models.SiteSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	settings.SiteName = update.SiteName
	settings.ContactEmail = update.ContactEmail
	settings.ContactPhone = update.ContactPhone
	settings.MaintenanceMode = update.MaintenanceMode

	if err := s.DB.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsService) SetAutoConfirm(enabled bool) (*models.SiteSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	settings.AutoConfirmEnabled = enabled
	if err := s.DB.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// AutoConfirmEnabled satisfies the worker toggle. Errors read as disabled.
func (s *SettingsService) AutoConfirmEnabled() bool {
	settings, err := s.Get()
	if err != nil {
		return false
	}
	return settings.AutoConfirmEnabled
}
