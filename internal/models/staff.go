package models

import "time"

type Staff struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"size:64;index;not null" json:"tenant_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`
	Title    string `gorm:"size:50" json:"title"`
	Bio      string `gorm:"type:text" json:"bio"`
	ImageURL string `gorm:"size:512" json:"image_url"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Staff) TableName() string {
	return "staff"
}
