package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templates embed.FS

type Email struct {
	To      string
	Subject string
	HTML    string
}

// Composer renders order confirmation emails. It has no side effects.
type Composer struct {
	tmpl *template.Template
	now  func() time.Time
}

func NewComposer() *Composer {
	funcs := template.FuncMap{
		"money": func(amount float64) string {
			return "$" + decimal.NewFromFloat(amount).StringFixed(2)
		},
		"lineTotal": func(item domain.LineItem) string {
			return "$" + item.Subtotal().StringFixed(2)
		},
	}
	tmpl := template.Must(template.New("order_confirmation.html").Funcs(funcs).ParseFS(templates, "templates/order_confirmation.html"))

	return &Composer{
		tmpl: tmpl,
		now:  time.Now,
	}
}

func Subject(orderNumber string) string {
	return fmt.Sprintf("Order Confirmation - %s | Revollution", orderNumber)
}

// Compose renders the confirmation for order. Subtotal and total restate
// order.TotalAmount; they are never recomputed from the lines.
func (c *Composer) Compose(order *domain.Order) (*Email, error) {
	data := struct {
		Order *domain.Order
		Year  int
	}{
		Order: order,
		Year:  c.now().Year(),
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render order email: %w", err)
	}

	return &Email{
		To:      order.Customer.Email,
		Subject: Subject(order.OrderNumber),
		HTML:    buf.String(),
	}, nil
}
