package models

import "time"

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name    string `gorm:"column:name;size:150" json:"name" binding:"required"`
	Email   string `gorm:"column:email;size:150" json:"email" binding:"required,email"`
	Subject string `gorm:"column:subject;size:255" json:"subject"`
	Message string `gorm:"column:message;type:text" json:"message" binding:"required"`
}
