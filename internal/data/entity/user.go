package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	City         string   `db:"city"`
	Area         string   `db:"area"`
	IsActive     bool     `db:"is_active"`
}

// ProviderProfile holds the business details of a provider account.
type ProviderProfile struct {
	UserID          uuid.UUID       `db:"user_id"`
	BusinessName    string          `db:"business_name"`
	ServiceCategory ServiceCategory `db:"service_category"`
	Address         string          `db:"address"`
	City            string          `db:"city"`
	Bio             string          `db:"bio"`
	AcceptedTerms   bool            `db:"accepted_terms"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// ProviderListing is the discovery read model.
type ProviderListing struct {
	User          User
	Profile       ProviderProfile
	AverageRating float64
	ReviewCount   int
}
