package domain

import "github.com/shopspring/decimal"

// Color is a selectable frame color shown on the product page.
type Color struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Image string `json:"image,omitempty"`
}

type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Product is owned by the catalog. The cart keeps a full snapshot of it taken
// at add time and only ever reads ID and Price.
type Product struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	ComparePrice *decimal.Decimal `json:"comparePrice,omitempty"`
	Images       []string         `json:"images"`
	Category     string           `json:"category"`
	Colors       []Color          `json:"colors"`
	Sizes        []string         `json:"sizes,omitempty"`
	Features     []string         `json:"features"`
	InStock      bool             `json:"inStock"`
	IsNew        bool             `json:"isNew,omitempty"`
	IsBestseller bool             `json:"isBestseller,omitempty"`
	SEO          SEO              `json:"seo"`
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	out := p
	if p.ComparePrice != nil {
		cp := *p.ComparePrice
		out.ComparePrice = &cp
	}
	out.Images = cloneSlice(p.Images)
	out.Colors = cloneSlice(p.Colors)
	out.Sizes = cloneSlice(p.Sizes)
	out.Features = cloneSlice(p.Features)
	out.SEO.Keywords = cloneSlice(p.SEO.Keywords)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
