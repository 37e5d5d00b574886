package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
	Category  string  `json:"category"`
}

func (c CartItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(c.UnitPrice).Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func (c CartItem) LineItem() LineItem {
	return LineItem{
		ProductID: c.ProductID,
		Name:      c.Name,
		Category:  c.Category,
		UnitPrice: c.UnitPrice,
		Quantity:  c.Quantity,
		ImageURL:  c.ImageURL,
	}
}

// UnmarshalJSON also accepts the storefront's browser field names
// (_id, id, price, image).
func (c *CartItem) UnmarshalJSON(data []byte) error {
	type plain CartItem
	var aux struct {
		plain
		LegacyID    string   `json:"_id"`
		ShortID     string   `json:"id"`
		LegacyPrice *float64 `json:"price"`
		LegacyImage string   `json:"image"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = CartItem(aux.plain)
	if c.ProductID == "" {
		c.ProductID = aux.LegacyID
	}
	if c.ProductID == "" {
		c.ProductID = aux.ShortID
	}
	if c.UnitPrice == 0 && aux.LegacyPrice != nil {
		c.UnitPrice = *aux.LegacyPrice
	}
	if c.ImageURL == "" {
		c.ImageURL = aux.LegacyImage
	}
	return nil
}
