package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product types available in the catalogue.
const (
	ProductTypeFruit     = "Fruit"
	ProductTypeVegetable = "Vegetable"
)

// ProductTypes is the fixed set of catalogue categories.
var ProductTypes = []string{ProductTypeFruit, ProductTypeVegetable}

// Product represents a purchasable catalogue item. Edits overwrite in
// place; orders keep only the product id, so price changes show up in
// historical totals.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	PricePerUnit float64            `bson:"price_per_unit" json:"pricePerUnit"`
	Type         string             `bson:"type" json:"type"`
}

// ValidProductType reports whether t is a member of the category enumeration.
func ValidProductType(t string) bool {
	for _, pt := range ProductTypes {
		if pt == t {
			return true
		}
	}
	return false
}
