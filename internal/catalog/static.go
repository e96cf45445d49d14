package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Static serves the built-in LUXE VISION catalog from memory.
type Static struct {
	products   []domain.Product
	categories []domain.Category
}

// NewStatic returns the built-in catalog.
func NewStatic() *Static {
	return &Static{products: builtinProducts(), categories: builtinCategories()}
}

// NewStaticFrom serves the given products and categories instead of the
// built-in set.
func NewStaticFrom(products []domain.Product, categories []domain.Category) *Static {
	return &Static{products: cloneProducts(products), categories: append([]domain.Category(nil), categories...)}
}

func (s *Static) List(context.Context) ([]domain.Product, error) {
	return cloneProducts(s.products), nil
}

func (s *Static) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			out := p.Clone()
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Static) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			out := p.Clone()
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Static) Categories(context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), s.categories...), nil
}

func cloneProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func comparePrice(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func builtinCategories() []domain.Category {
	return []domain.Category{
		{ID: "driving", Name: "Driving Collection", Description: "Polarized lenses for optimal glare reduction during driving", Image: "https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=600"},
		{ID: "kids", Name: "Kids Collection", Description: "Durable, protective eyewear designed specifically for children", Image: "https://images.unsplash.com/photo-1574201635302-388dd92a4c3f?w=600"},
		{ID: "blue-light", Name: "Blue Light Protection", Description: "Filter harmful blue light from screens for digital wellness", Image: "https://images.unsplash.com/photo-1591076482161-42ce6da69f67?w=600"},
		{ID: "sports", Name: "Sports Performance", Description: "Lightweight, secure frames designed for active lifestyles", Image: "https://images.unsplash.com/photo-1556306535-0f09a537f0a3?w=600"},
		{ID: "fashion", Name: "Fashion Collection", Description: "Trendsetting designs for the style-conscious individual", Image: "https://images.unsplash.com/photo-1511499767150-a48a237f0083?w=600"},
	}
}

func builtinProducts() []domain.Product {
	return []domain.Product{
		{
			ID:           "drv-001",
			Name:         "Aviator Classic Polarized",
			Slug:         "aviator-classic-polarized",
			Category:     "driving",
			Description:  "Timeless aviator design with advanced polarized lenses that eliminate 99.9% of glare. Perfect for long drives and bright conditions. Crafted with premium titanium frames for lightweight comfort.",
			Price:        price(189),
			ComparePrice: comparePrice(229),
			Images: []string{
				"https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=800",
				"https://images.unsplash.com/photo-1577803645773-f96470509666?w=800",
				"https://images.unsplash.com/photo-1583496661160-fb5886a0aaaa?w=800",
			},
			Colors:       []domain.Color{{Name: "Gold", Hex: "#D4AF37"}, {Name: "Silver", Hex: "#C0C0C0"}, {Name: "Gunmetal", Hex: "#2C3539"}},
			Features:     []string{"Polarized lenses", "100% UV protection", "Titanium frame", "Scratch-resistant coating", "Anti-reflective interior"},
			InStock:      true,
			IsBestseller: true,
			SEO: domain.SEO{
				Title:       "Aviator Classic Polarized Sunglasses | LUXE VISION",
				Description: "Premium polarized aviator sunglasses with titanium frames. Perfect for driving with 99.9% glare reduction.",
				Keywords:    []string{"aviator", "polarized", "driving", "titanium"},
			},
		},
		{
			ID:          "drv-002",
			Name:        "Wayfarer Driver Elite",
			Slug:        "wayfarer-driver-elite",
			Category:    "driving",
			Description: "Bold wayfarer silhouette engineered for the driving enthusiast. High-contrast lenses enhance visibility in varying light conditions while the acetate frame provides durability.",
			Price:       price(165),
			Images: []string{
				"https://images.unsplash.com/photo-1508296695146-257a814070b4?w=800",
				"https://images.unsplash.com/photo-1511499767150-a48a237f0083?w=800",
			},
			Colors:   []domain.Color{{Name: "Tortoise", Hex: "#8B4513"}, {Name: "Matte Black", Hex: "#1a1a1a"}},
			Features: []string{"High-contrast lenses", "Acetate frame", "UV400 protection", "Impact resistant", "Non-slip temples"},
			InStock:  true,
			IsNew:    true,
			SEO: domain.SEO{
				Title:       "Wayfarer Driver Elite | LUXE VISION",
				Description: "Premium wayfarer sunglasses designed for driving with high-contrast lenses.",
				Keywords:    []string{"wayfarer", "driving", "acetate"},
			},
		},
		{
			ID:          "kid-001",
			Name:        "Junior Explorer",
			Slug:        "junior-explorer",
			Category:    "kids",
			Description: "Specially designed for children ages 4-8, these sunglasses offer full UV protection in fun, durable frames. Flexible hinges prevent breakage during active play.",
			Price:       price(79),
			Images: []string{
				"https://images.unsplash.com/photo-1574201635302-388dd92a4c3f?w=800",
				"https://images.unsplash.com/photo-1509695507497-903c140c43b0?w=800",
			},
			Colors:       []domain.Color{{Name: "Pink", Hex: "#FF69B4"}, {Name: "Blue", Hex: "#4169E1"}, {Name: "Red", Hex: "#DC143C"}},
			Features:     []string{"UV400 protection", "Shatterproof lenses", "Flexible hinges", "Soft silicone nose pads", "Included protective case"},
			InStock:      true,
			IsBestseller: true,
			SEO: domain.SEO{
				Title:       "Junior Explorer Kids Sunglasses | LUXE VISION",
				Description: "Durable, protective sunglasses designed for children with shatterproof lenses.",
				Keywords:    []string{"kids", "children", "uv protection"},
			},
		},
		{
			ID:          "kid-002",
			Name:        "Teen Style Pro",
			Slug:        "teen-style-pro",
			Category:    "kids",
			Description: "Trendy sunglasses designed for pre-teens and teenagers. Adult-quality protection with youth-oriented styling. Perfect for outdoor activities and everyday wear.",
			Price:       price(95),
			Images: []string{
				"https://images.unsplash.com/photo-1473496169904-658ba7c44d8a?w=800",
				"https://images.unsplash.com/photo-1511499767150-a48a237f0083?w=800",
			},
			Colors:   []domain.Color{{Name: "Matte Black", Hex: "#1a1a1a"}, {Name: "Tortoise", Hex: "#8B4513"}, {Name: "Crystal", Hex: "#E8E8E8"}},
			Features: []string{"UV400 protection", "Polarized option", "Durable frame", "Sport hinges", "Cleaning cloth included"},
			InStock:  true,
			IsNew:    true,
			SEO: domain.SEO{
				Title:       "Teen Style Pro Sunglasses | LUXE VISION",
				Description: "Stylish sunglasses for teenagers with full UV protection.",
				Keywords:    []string{"teen", "youth", "polarized"},
			},
		},
		{
			ID:           "blu-001",
			Name:         "Digital Shield Classic",
			Slug:         "digital-shield-classic",
			Category:     "blue-light",
			Description:  "Premium blue light blocking glasses for the modern digital lifestyle. Filter 90% of harmful blue light from screens while maintaining crystal-clear vision and comfortable wear.",
			Price:        price(129),
			ComparePrice: comparePrice(159),
			Images: []string{
				"https://images.unsplash.com/photo-1591076482161-42ce6da69f67?w=800",
				"https://images.unsplash.com/photo-1574258495973-f010dfbb5371?w=800",
			},
			Colors:       []domain.Color{{Name: "Gold", Hex: "#D4AF37"}, {Name: "Silver", Hex: "#C0C0C0"}, {Name: "Rose Gold", Hex: "#B76E79"}},
			Features:     []string{"90% blue light filtering", "Anti-reflective coating", "Scratch-resistant", "Lightweight frame", "Reduced eye fatigue"},
			InStock:      true,
			IsBestseller: true,
			SEO: domain.SEO{
				Title:       "Digital Shield Classic Blue Light Glasses | LUXE VISION",
				Description: "Premium blue light blocking glasses for digital eye strain relief.",
				Keywords:    []string{"blue light", "computer", "digital", "gaming"},
			},
		},
		{
			ID:          "blu-002",
			Name:        "Gamer Edge Pro",
			Slug:        "gamer-edge-pro",
			Category:    "blue-light",
			Description: "Engineered specifically for gamers and heavy computer users. Advanced blue light filtering with amber tint for enhanced contrast during extended gaming sessions.",
			Price:       price(149),
			Images: []string{
				"https://images.unsplash.com/photo-1617802690992-15d93263d3a9?w=800",
				"https://images.unsplash.com/photo-1580489944761-15a19d654956?w=800",
			},
			Colors:   []domain.Color{{Name: "Black/Red", Hex: "#1a1a1a"}, {Name: "Black/Blue", Hex: "#000080"}},
			Features: []string{"95% blue light filtering", "Amber tint", "Ultra-lightweight", "Non-slip temples", "Extended wear comfort"},
			InStock:  true,
			IsNew:    true,
			SEO: domain.SEO{
				Title:       "Gamer Edge Pro Blue Light Glasses | LUXE VISION",
				Description: "Professional blue light blocking glasses designed for gamers.",
				Keywords:    []string{"gaming", "blue light", "esports"},
			},
		},
		{
			ID:          "sp-001",
			Name:        "Velocity Sport Elite",
			Slug:        "velocity-sport-elite",
			Category:    "sports",
			Description: "High-performance sports sunglasses designed for runners, cyclists, and athletes. Lightweight wraparound frame with interchangeable lenses for varying conditions.",
			Price:       price(199),
			Images: []string{
				"https://images.unsplash.com/photo-1556306535-0f09a537f0a3?w=800",
				"https://images.unsplash.com/photo-1577803645773-f96470509666?w=800",
			},
			Colors:       []domain.Color{{Name: "Matte Black", Hex: "#1a1a1a"}, {Name: "Photochromic", Hex: "#4B0082"}},
			Features:     []string{"Interchangeable lenses", "Wraparound design", "Non-slip grip", "Ventilated lenses", "Impact resistant"},
			InStock:      true,
			IsBestseller: true,
			SEO: domain.SEO{
				Title:       "Velocity Sport Elite Sunglasses | LUXE VISION",
				Description: "High-performance sports sunglasses with interchangeable lenses.",
				Keywords:    []string{"sports", "running", "cycling", "athletic"},
			},
		},
		{
			ID:          "sp-002",
			Name:        "Aqua Performance",
			Slug:        "aqua-performance",
			Category:    "sports",
			Description: "Designed specifically for water sports with hydrophobic lens coating that repels water. Floatable frame design ensures your sunglasses stay with you during any water activity.",
			Price:       price(175),
			Images: []string{
				"https://images.unsplash.com/photo-1517649763962-0c623066013b?w=800",
				"https://images.unsplash.com/photo-1574258495973-f010dfbb5371?w=800",
			},
			Colors:   []domain.Color{{Name: "Ocean Blue", Hex: "#0077BE"}, {Name: "Lime", Hex: "#32CD32"}},
			Features: []string{"Hydrophobic coating", "Floatable frame", "Polarized lenses", "Saltwater resistant", "Secure strap included"},
			InStock:  true,
			SEO: domain.SEO{
				Title:       "Aqua Performance Water Sports Sunglasses | LUXE VISION",
				Description: "Water sports sunglasses with hydrophobic coating and floatable design.",
				Keywords:    []string{"water sports", "fishing", "boating", "polarized"},
			},
		},
		{
			ID:           "fas-001",
			Name:         "Signature Cat Eye",
			Slug:         "signature-cat-eye",
			Category:     "fashion",
			Description:  "Elegant cat-eye silhouette that exudes sophistication. Handcrafted Italian acetate frame with premium CR-39 lenses. A statement piece for the fashion-forward individual.",
			Price:        price(245),
			ComparePrice: comparePrice(295),
			Images: []string{
				"https://images.unsplash.com/photo-1511499767150-a48a237f0083?w=800",
				"https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=800",
			},
			Colors:       []domain.Color{{Name: "Tortoise", Hex: "#8B4513"}, {Name: "Crystal", Hex: "#E8E8E8"}, {Name: "Black", Hex: "#0a0a0a"}},
			Features:     []string{"Italian acetate", "CR-39 lenses", "100% UV protection", "Hand-finished", "Premium case included"},
			InStock:      true,
			IsBestseller: true,
			SEO: domain.SEO{
				Title:       "Signature Cat Eye Sunglasses | LUXE VISION",
				Description: "Elegant cat-eye sunglasses handcrafted from Italian acetate.",
				Keywords:    []string{"cat eye", "fashion", "italian", "luxury"},
			},
		},
		{
			ID:          "fas-002",
			Name:        "Modern Round Classic",
			Slug:        "modern-round-classic",
			Category:    "fashion",
			Description: "Contemporary take on the classic round silhouette. Ultra-thin stainless steel frame with premium tinted lenses. Lightweight comfort meets timeless style.",
			Price:       price(189),
			Images: []string{
				"https://images.unsplash.com/photo-1577803645773-f96470509666?w=800",
				"https://images.unsplash.com/photo-1508296695146-257a814070b4?w=800",
			},
			Colors:   []domain.Color{{Name: "Gold/Brown", Hex: "#D4AF37"}, {Name: "Silver/Green", Hex: "#C0C0C0"}, {Name: "Rose Gold/Pink", Hex: "#B76E79"}},
			Features: []string{"Stainless steel", "Tinted lenses", "100% UV protection", "Ultra-thin frame", "Featherlight comfort"},
			InStock:  true,
			IsNew:    true,
			SEO: domain.SEO{
				Title:       "Modern Round Classic Sunglasses | LUXE VISION",
				Description: "Contemporary round sunglasses with ultra-thin stainless steel frames.",
				Keywords:    []string{"round", "minimalist", "stainless steel"},
			},
		},
		{
			ID:          "fas-003",
			Name:        "Oversized Statement",
			Slug:        "oversized-statement",
			Category:    "fashion",
			Description: "Bold oversized frames that command attention. Premium acetate construction with gradient lenses that offer full coverage and maximum impact.",
			Price:       price(269),
			Images: []string{
				"https://images.unsplash.com/photo-1473496169904-658ba7c44d8a?w=800",
				"https://images.unsplash.com/photo-1509695507497-903c140c43b0?w=800",
			},
			Colors:   []domain.Color{{Name: "Black", Hex: "#0a0a0a"}, {Name: "Havana", Hex: "#8B4513"}},
			Features: []string{"Oversized frame", "Gradient lenses", "Italian acetate", "Full UV protection", "Designer case included"},
			InStock:  true,
			SEO: domain.SEO{
				Title:       "Oversized Statement Sunglasses | LUXE VISION",
				Description: "Bold oversized sunglasses with gradient lenses for maximum impact.",
				Keywords:    []string{"oversized", "bold", "gradient", "designer"},
			},
		},
		{
			ID:           "KT001",
			Name:         "Men Polarized Sunglasses",
			Slug:         "men-polarized-sunglasses",
			Category:     "driving",
			Description:  "Classic men's polarized sunglasses with premium frame design. Features advanced glare reduction technology for optimal driving comfort and clear visibility in bright conditions.",
			Price:        price(12),
			ComparePrice: comparePrice(19),
			Images:       []string{"https://photo3.yupoo.com/lincaizhi/d1b2df12/4128d1d9.jpg?username=lincaizhi"},
			Colors:       []domain.Color{{Name: "金色", Hex: "#D4AF37"}, {Name: "银色", Hex: "#C0C0C0"}},
			Features:     []string{"Polarized lenses", "UV400 protection", "Lightweight frame", "Anti-slip temples"},
			InStock:      true,
			IsNew:        true,
			SEO: domain.SEO{
				Title:       "Men Polarized Sunglasses | LUXE VISION",
				Description: "Classic men's polarized sunglasses with premium frame design.",
				Keywords:    []string{"men sunglasses", "polarized sunglasses"},
			},
		},
	}
}

// CategoryList exposes the built-in categories as a list source.
func (s *Static) CategoryList() Categories {
	return Categories(s.categories)
}

// Categories is an in-memory category list.
type Categories []domain.Category

func (c Categories) List(context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), c...), nil
}
