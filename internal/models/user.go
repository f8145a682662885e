package models

import "github.com/shopspring/decimal"

// Role is the access level of a user account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RolePacker   Role = "packer"
	RoleDriver   Role = "driver"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RolePacker, RoleDriver:
		return true
	}
	return false
}

// User represents an account of any role.
type User struct {
	BaseModel
	Name          string          `json:"name"`
	Email         string          `gorm:"uniqueIndex" json:"email"`
	Phone         string          `json:"phone"`
	PasswordHash  string          `json:"-"`
	Role          Role            `gorm:"type:varchar(16);default:customer;index" json:"role"`
	WalletBalance decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"wallet_balance"`
	Addresses     []Address       `json:"addresses,omitempty"`
	Orders        []Order         `json:"orders,omitempty"`
}
