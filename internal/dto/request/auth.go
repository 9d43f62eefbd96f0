package request

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,notblank,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Role     string  `json:"role" validate:"required,oneof=customer provider"`
	City     string  `json:"city" validate:"max=100"`
	Area     string  `json:"area" validate:"max=100"`

	// Provider only.
	BusinessName    string `json:"business_name" validate:"max=150"`
	ServiceCategory string `json:"service_category" validate:"omitempty,oneof=plumbing electrical carpentry cleaning painting ac-repair appliance-repair beauty-salon pest-control other"`
	Address         string `json:"address" validate:"max=255"`
	Bio             string `json:"bio" validate:"max=1000"`
	AcceptedTerms   bool   `json:"accepted_terms"`
}

type RegisterAdminRequest struct {
	Name            string `json:"name" validate:"required,notblank,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	BootstrapSecret string `json:"bootstrap_secret,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
