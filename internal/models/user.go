package models

import "time"

type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleStaff      Role = "STAFF"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is a tenant-scoped profile. ExternalID links it to the identity provider.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"size:64;not null;uniqueIndex:idx_users_tenant_email" json:"tenant_id"`

	ExternalID   *string `gorm:"size:128;uniqueIndex" json:"external_id,omitempty"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:100;not null;uniqueIndex:idx_users_tenant_email" json:"email"`
	Phone        string  `gorm:"size:20" json:"phone"`
	PasswordHash string  `gorm:"size:255" json:"-"`
	Role         Role    `gorm:"size:20;default:'CUSTOMER'" json:"role"`
	Active       bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
