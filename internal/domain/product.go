package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryWomen  Category = "women"
	CategoryMen    Category = "men"
	CategoryUnisex Category = "unisex"
)

type ScentNotes struct {
	Top    string `bson:"top" json:"top"`
	Middle string `bson:"middle" json:"middle"`
	Base   string `bson:"base" json:"base"`
}

type ProductImage struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt" json:"alt"`
}

// Variant stock levels are informational; orders never reserve or decrement them.
type Variant struct {
	SizeML        int    `bson:"size_ml" json:"sizeMl"`
	StockQuantity int    `bson:"stock_quantity" json:"stockQuantity"`
	SKU           string `bson:"sku" json:"sku"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    Category           `bson:"category" json:"category"`
	Notes       ScentNotes         `bson:"notes" json:"notes"`
	Images      []ProductImage     `bson:"images" json:"images"`
	Variants    []Variant          `bson:"variants" json:"variants"`
	Featured    bool               `bson:"featured" json:"featured"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
