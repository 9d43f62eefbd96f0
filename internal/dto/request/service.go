package request

type ServiceRequest struct {
	Name            string  `json:"name" validate:"required,notblank,max=150"`
	Category        string  `json:"category" validate:"required,oneof=plumbing electrical carpentry cleaning painting ac-repair appliance-repair beauty-salon pest-control other"`
	Description     string  `json:"description" validate:"required,notblank,max=2000"`
	BasePrice       float64 `json:"base_price" validate:"required,gt=0"`
	PricingType     string  `json:"pricing_type" validate:"required,oneof=fixed hourly"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0,max=1440"`
}

type ServiceUpdateRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,notblank,max=150"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,oneof=plumbing electrical carpentry cleaning painting ac-repair appliance-repair beauty-salon pest-control other"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,notblank,max=2000"`
	BasePrice       *float64 `json:"base_price,omitempty" validate:"omitempty,gt=0"`
	PricingType     *string  `json:"pricing_type,omitempty" validate:"omitempty,oneof=fixed hourly"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gt=0,max=1440"`
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}
