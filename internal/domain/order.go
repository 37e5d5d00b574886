package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

type Customer struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

type ShippingAddress struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
}

// LineItem is the price snapshot taken when the order is placed.
type LineItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Category  string  `bson:"category" json:"category"`
	UnitPrice float64 `bson:"unit_price" json:"unitPrice"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	ImageURL  string  `bson:"image_url" json:"imageUrl"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(li.UnitPrice).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Notification tracks delivery of the confirmation email for an order.
type Notification struct {
	Status    NotificationStatus `bson:"status" json:"status"`
	Attempts  int                `bson:"attempts" json:"attempts"`
	LastError string             `bson:"last_error,omitempty" json:"lastError,omitempty"`
	SentAt    *time.Time         `bson:"sent_at,omitempty" json:"sentAt,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"order_number" json:"orderNumber"`
	Customer        Customer           `bson:"customer" json:"customer"`
	ShippingAddress ShippingAddress    `bson:"shipping_address" json:"shippingAddress"`
	Items           []LineItem         `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"total_amount" json:"totalAmount"`
	Status          OrderStatus        `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus      `bson:"payment_status" json:"paymentStatus"`
	EventRecorded   bool               `bson:"event_recorded" json:"-"`
	Notification    Notification       `bson:"notification" json:"notification"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ItemsTotal sums unit price times quantity over the line items.
func ItemsTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
