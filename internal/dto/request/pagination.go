package request

import "karigar/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page" validate:"omitempty,min=1"`
	PerPage int `json:"per_page" validate:"omitempty,min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	page, perPage := utils.ClampPage(p.Page, p.PerPage)
	return (page - 1) * perPage
}

func (p PaginatedRequest) Limit() int {
	_, perPage := utils.ClampPage(p.Page, p.PerPage)
	return perPage
}

// Normalize fills in defaults so responses echo the effective page.
func (p *PaginatedRequest) Normalize() {
	p.Page, p.PerPage = utils.ClampPage(p.Page, p.PerPage)
}
