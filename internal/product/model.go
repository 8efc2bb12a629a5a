package product

import "time"

type Unit string

const (
	UnitKg    Unit = "kg"
	UnitG     Unit = "g"
	UnitL     Unit = "l"
	UnitMl    Unit = "ml"
	UnitPiece Unit = "piece"
	UnitPack  Unit = "pack"
)

// ValidUnit reports whether u is one of the sellable units.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitKg, UnitG, UnitL, UnitMl, UnitPiece, UnitPack:
		return true
	}
	return false
}

// CategoryRef is the populated category shape attached to a product.
// Products whose category was removed resolve to the zero ref
// ("Uncategorized") at the API boundary instead of shape-sniffing.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Product struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description"`
	Price        float64      `json:"price"`
	CategoryID   *int64       `json:"-"`
	Category     *CategoryRef `json:"category"`
	Stock        int          `json:"stock"`
	Image        string       `json:"image"`
	CloudinaryID string       `json:"-"`
	Unit         Unit         `json:"unit"`
	Discount     float64      `json:"discount"`
	IsActive     bool         `json:"isActive"`
	CreatedBy    int64        `json:"createdBy"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// DiscountedPrice applies the percentage discount to the list price.
func (p *Product) DiscountedPrice() float64 {
	if p.Discount == 0 {
		return p.Price
	}
	return p.Price * (1 - p.Discount/100)
}

// Page is one page of catalog results.
type Page struct {
	Products    []*Product `json:"products"`
	TotalPages  int64      `json:"totalPages"`
	CurrentPage int32      `json:"currentPage"`
	Total       int64      `json:"total"`
}

type CreateParams struct {
	Name         string
	Description  string
	Price        float64
	CategoryID   *int64
	Stock        int
	Unit         Unit
	Discount     float64
	Image        string
	CloudinaryID string
	CreatedBy    int64
}

type UpdateParams struct {
	Name         *string
	Description  *string
	Price        *float64
	CategoryID   *int64
	Stock        *int
	Unit         *Unit
	Discount     *float64
	Image        *string
	CloudinaryID *string
}
