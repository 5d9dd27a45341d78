package dto

type Pagination struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (p *Pagination) Normalize() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
