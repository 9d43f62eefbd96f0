package request

type ProviderProfileRequest struct {
	BusinessName    *string `json:"business_name,omitempty" validate:"omitempty,notblank,max=150"`
	ServiceCategory *string `json:"service_category,omitempty" validate:"omitempty,oneof=plumbing electrical carpentry cleaning painting ac-repair appliance-repair beauty-salon pest-control other"`
	Address         *string `json:"address,omitempty" validate:"omitempty,notblank,max=255"`
	City            *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Bio             *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
}

type SearchProvidersRequest struct {
	PaginatedRequest
	Category string `json:"category" validate:"omitempty,oneof=plumbing electrical carpentry cleaning painting ac-repair appliance-repair beauty-salon pest-control other"`
	Location string `json:"location" validate:"max=100"`
	Keywords string `json:"keywords" validate:"max=100"`
}
