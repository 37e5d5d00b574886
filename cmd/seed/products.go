package main

import "github.com/revollution/storefront/internal/domain"

// sampleProducts is the launch catalog.
var sampleProducts = []domain.Product{
	{
		Name:        "Emerald Dawn",
		Slug:        "emerald-dawn",
		Description: "A bright, green opening with citrus and white florals. Ideal for early meetings, coffee catch-ups, and daylight confidence. Fresh bergamot meets jasmine petals in a clean, energizing composition.",
		Price:       89,
		Category:    domain.CategoryUnisex,
		Notes: domain.ScentNotes{
			Top:    "Green bergamot, Lemon zest, Fresh mint",
			Middle: "White jasmine, Green tea, Orange blossom",
			Base:   "White musk, Cedarwood, Amber",
		},
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1541643600914-78b084683601?w=800", Alt: "Emerald Dawn perfume bottle"},
		},
		Variants: []domain.Variant{
			{SizeML: 50, StockQuantity: 100, SKU: "REV-ED-50"},
			{SizeML: 100, StockQuantity: 75, SKU: "REV-ED-100"},
		},
		Featured: true,
	},
	{
		Name:        "Azure Ember",
		Slug:        "azure-ember",
		Description: "Smokey woods, blue iris, and a hint of spice. Built for nights that go beyond the plan and moments that deserve to linger. Deep, warm, and unforgettable.",
		Price:       95,
		Category:    domain.CategoryUnisex,
		Notes: domain.ScentNotes{
			Top:    "Blue iris, Black pepper, Cardamom",
			Middle: "Incense, Violet leaf, Tobacco",
			Base:   "Smoked woods, Patchouli, Vanilla",
		},
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1592945403244-b3fbafd7f539?w=800", Alt: "Azure Ember perfume bottle"},
		},
		Variants: []domain.Variant{
			{SizeML: 50, StockQuantity: 80, SKU: "REV-AE-50"},
			{SizeML: 100, StockQuantity: 60, SKU: "REV-AE-100"},
		},
		Featured: true,
	},
	{
		Name:        "Neon Mirage",
		Slug:        "neon-mirage",
		Description: "A layered green-blue accord that reads different on everyone, truly unisex, undeniably modern, unapologetically Revollution. Electric yet grounded.",
		Price:       92,
		Category:    domain.CategoryUnisex,
		Notes: domain.ScentNotes{
			Top:    "Aquatic notes, Grapefruit, Artemisia",
			Middle: "Sea salt, Sage, Lavender",
			Base:   "Driftwood, Ambergris, Oakmoss",
		},
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1563170351-be82bc888aa4?w=800", Alt: "Neon Mirage perfume bottle"},
		},
		Variants: []domain.Variant{
			{SizeML: 50, StockQuantity: 90, SKU: "REV-NM-50"},
			{SizeML: 100, StockQuantity: 70, SKU: "REV-NM-100"},
		},
		Featured: true,
	},
	{
		Name:        "Velvet Cascade",
		Slug:        "velvet-cascade",
		Description: "A luxurious floral-green blend with velvety rose and soft moss. Elegant, refined, and perfect for those who appreciate timeless sophistication with a green twist.",
		Price:       98,
		Category:    domain.CategoryWomen,
		Notes: domain.ScentNotes{
			Top:    "Green mandarin, Pear, Freesia",
			Middle: "Rose absolute, Peony, Magnolia",
			Base:   "Velvet moss, Sandalwood, Cashmeran",
		},
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1528662768781-e34ec5440e89?w=800", Alt: "Velvet Cascade perfume bottle"},
		},
		Variants: []domain.Variant{
			{SizeML: 50, StockQuantity: 65, SKU: "REV-VC-50"},
			{SizeML: 100, StockQuantity: 50, SKU: "REV-VC-100"},
		},
		Featured: false,
	},
	{
		Name:        "Midnight Fern",
		Slug:        "midnight-fern",
		Description: "A bold, masculine scent with aromatic fern and dark woods. Crisp green freshness transitions into deep, earthy undertones, perfect for confident, modern men.",
		Price:       88,
		Category:    domain.CategoryMen,
		Notes: domain.ScentNotes{
			Top:    "Fern, Lavender, Pine needles",
			Middle: "Geranium, Clary sage, Vetiver",
			Base:   "Dark woods, Leather, Tonka bean",
		},
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1585386959984-a4155224a1ad?w=800", Alt: "Midnight Fern perfume bottle"},
		},
		Variants: []domain.Variant{
			{SizeML: 50, StockQuantity: 85, SKU: "REV-MF-50"},
			{SizeML: 100, StockQuantity: 65, SKU: "REV-MF-100"},
		},
		Featured: false,
	},
	{
		Name:        "Citrus Horizon",
		Slug:        "citrus-horizon",
		Description: "An invigorating citrus explosion with green undertones. Light, energetic, and perfect for daytime wear. A burst of sunshine in a bottle.",
		Price:       79,
		Category:    domain.CategoryUnisex,
		Notes: domain.ScentNotes{
			Top:    "Yuzu, Lime, Green apple",
			Middle: "Basil, Ginger, Neroli",
			Base:   "White cedar, Light musk, Vetiver",
		},
		Images: []domain.ProductImage{
			{URL: "https://images.unsplash.com/photo-1594035910387-fea47794261f?w=800", Alt: "Citrus Horizon perfume bottle"},
		},
		Variants: []domain.Variant{
			{SizeML: 50, StockQuantity: 120, SKU: "REV-CH-50"},
			{SizeML: 100, StockQuantity: 95, SKU: "REV-CH-100"},
		},
		Featured: false,
	},
}
