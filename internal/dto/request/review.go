package request

type CreateReviewRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type ReviewVisibilityRequest struct {
	Status string `json:"status" validate:"required,oneof=VISIBLE HIDDEN"`
}
