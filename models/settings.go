package models

import "time"

// SiteSettings is a singleton row: a single record holds the site-wide
// configuration, created on first read if missing.
type SiteSettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SiteName           string `gorm:"column:site_name;size:255" json:"siteName"`
	ContactEmail       string `gorm:"column:contact_email;size:150" json:"contactEmail"`
	ContactPhone       string `gorm:"column:contact_phone;size:50" json:"contactPhone"`
	MaintenanceMode    bool   `gorm:"column:maintenance_mode;default:false" json:"maintenanceMode"`
	AutoConfirmEnabled bool   `gorm:"column:auto_confirm_enabled;default:false" json:"autoConfirmEnabled"`
}
