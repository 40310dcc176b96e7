package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{Email: "user@example.com", Password: "secret1"}
	assert.Empty(t, valid.Validate())

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing at sign", RegisterRequest{Email: "userexample.com", Password: "secret1"}},
		{"missing domain", RegisterRequest{Email: "user@", Password: "secret1"}},
		{"short tld", RegisterRequest{Email: "user@example.c", Password: "secret1"}},
		{"empty email", RegisterRequest{Email: "", Password: "secret1"}},
		{"short password", RegisterRequest{Email: "user@example.com", Password: "12345"}},
		{"empty password", RegisterRequest{Email: "user@example.com", Password: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEmpty(t, tc.req.Validate())
		})
	}
}

func TestProductRequestValidate(t *testing.T) {
	valid := ProductRequest{Name: "Apples", PricePerUnit: 50, Type: "Fruit"}
	assert.Empty(t, valid.Validate())

	free := ProductRequest{Name: "Samples", PricePerUnit: 0, Type: "Vegetable"}
	assert.Empty(t, free.Validate(), "zero price is allowed")

	assert.NotEmpty(t, (&ProductRequest{Name: "", PricePerUnit: 50, Type: "Fruit"}).Validate())
	assert.NotEmpty(t, (&ProductRequest{Name: "Apples", PricePerUnit: -1, Type: "Fruit"}).Validate())
	assert.NotEmpty(t, (&ProductRequest{Name: "Apples", PricePerUnit: 50, Type: "Meat"}).Validate())
	assert.NotEmpty(t, (&ProductRequest{Name: "Apples", PricePerUnit: 50, Type: ""}).Validate())
}

func TestPlaceOrderRequestValidate(t *testing.T) {
	productID := primitive.NewObjectID().Hex()

	valid := PlaceOrderRequest{
		Items:     []OrderItemRequest{{ProductID: productID, Quantity: 2}},
		BuyerName: "Asha",
		Contact:   "+1 555 0100",
		Address:   "12 Market Road",
	}
	assert.Empty(t, valid.Validate())

	cases := []struct {
		name string
		req  PlaceOrderRequest
	}{
		{"no items", PlaceOrderRequest{BuyerName: "Asha", Contact: "c", Address: "a"}},
		{"zero quantity", PlaceOrderRequest{
			Items:     []OrderItemRequest{{ProductID: productID, Quantity: 0}},
			BuyerName: "Asha", Contact: "c", Address: "a",
		}},
		{"negative quantity", PlaceOrderRequest{
			Items:     []OrderItemRequest{{ProductID: productID, Quantity: -3}},
			BuyerName: "Asha", Contact: "c", Address: "a",
		}},
		{"missing product id", PlaceOrderRequest{
			Items:     []OrderItemRequest{{ProductID: "", Quantity: 1}},
			BuyerName: "Asha", Contact: "c", Address: "a",
		}},
		{"missing buyer name", PlaceOrderRequest{
			Items:   []OrderItemRequest{{ProductID: productID, Quantity: 1}},
			Contact: "c", Address: "a",
		}},
		{"missing contact", PlaceOrderRequest{
			Items:     []OrderItemRequest{{ProductID: productID, Quantity: 1}},
			BuyerName: "Asha", Address: "a",
		}},
		{"missing address", PlaceOrderRequest{
			Items:     []OrderItemRequest{{ProductID: productID, Quantity: 1}},
			BuyerName: "Asha", Contact: "c",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEmpty(t, tc.req.Validate())
		})
	}
}

func TestPlaceOrderRequestLineItems(t *testing.T) {
	id := primitive.NewObjectID()
	req := PlaceOrderRequest{
		Items: []OrderItemRequest{{ProductID: id.Hex(), Quantity: 4}},
	}

	items, msg := req.LineItems()
	require.Empty(t, msg)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ProductID)
	assert.Equal(t, 4, items[0].Quantity)

	bad := PlaceOrderRequest{
		Items: []OrderItemRequest{{ProductID: "zzz", Quantity: 1}},
	}
	_, msg = bad.LineItems()
	assert.NotEmpty(t, msg)
}
