package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email     string `gorm:"column:email;size:150;uniqueIndex" json:"email"`
	Password  string `gorm:"column:password;size:255" json:"-"`
	FirstName string `gorm:"column:first_name;size:100" json:"firstName"`
	LastName  string `gorm:"column:last_name;size:100" json:"lastName"`
	Role      string `gorm:"column:role;size:20;default:user" json:"role"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"isActive"`
}
