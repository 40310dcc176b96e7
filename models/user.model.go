package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Orders holds the ids of every
// order the user currently owns; the order ledger keeps it in step with
// the orders collection on create and cancel.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Email    string               `bson:"email" json:"email"`
	Password string               `bson:"password" json:"-"`
	IsAdmin  bool                 `bson:"is_admin" json:"isAdmin"`
	Orders   []primitive.ObjectID `bson:"orders" json:"orders"`
}

// OwnsOrder reports whether orderID is in the user's owned-order set.
func (u *User) OwnsOrder(orderID primitive.ObjectID) bool {
	for _, id := range u.Orders {
		if id == orderID {
			return true
		}
	}
	return false
}
