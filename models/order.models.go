package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Every order starts as Pending; admins may move an
// order to any member of the set, in any direction.
const (
	StatusPending        = "Pending"
	StatusInTransit      = "In transit"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
	StatusReturned       = "Returned"
	StatusFailed         = "Failed"
)

// OrderStatuses is the full status enumeration.
var OrderStatuses = []string{
	StatusPending,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
	StatusReturned,
	StatusFailed,
}

// ValidOrderStatus reports whether s is a member of the status enumeration.
func ValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// LineItem is a (product reference, quantity) pair within an order.
type LineItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order represents a bulk order in the ledger.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Items     []LineItem         `bson:"items" json:"items"`
	BuyerName string             `bson:"buyer_name" json:"buyerName"`
	Contact   string             `bson:"contact" json:"contact"`
	Address   string             `bson:"address" json:"address"`
	Status    string             `bson:"status" json:"status"`
	UserID    primitive.ObjectID `bson:"user" json:"userId"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// ProductSummary is the read-time snapshot of a product joined into an
// order view. Name and price are the product's current values, not the
// values at placement time.
type ProductSummary struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	PricePerUnit float64            `json:"pricePerUnit"`
}

// ResolvedItem is a line item with its product reference joined.
type ResolvedItem struct {
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
}

// OrderView is an order as returned to clients: line items resolved and
// the total computed from current prices.
type OrderView struct {
	ID        primitive.ObjectID `json:"id"`
	Items     []ResolvedItem     `json:"items"`
	BuyerName string             `json:"buyerName"`
	Contact   string             `json:"contact"`
	Address   string             `json:"address"`
	Status    string             `json:"status"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"createdAt"`
	UserEmail string             `json:"userEmail,omitempty"`
}

// OrderTotal computes the order total as the sum of quantity times the
// product's current price per unit over the resolved items.
func OrderTotal(items []ResolvedItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Product.PricePerUnit * float64(item.Quantity)
	}
	return total
}
