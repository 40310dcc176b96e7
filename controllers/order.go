// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-bulkorder/middleware"
	"go-bulkorder/models"
	"go-bulkorder/utils"
)

// OrderController is the order ledger: it owns order records, the status
// workflow and the ownership rules, and keeps the user's owned-order set
// in step with the orders collection.
type OrderController struct {
	Orders       *mongo.Collection
	Products     *mongo.Collection
	Users        *mongo.Collection
	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController.
func NewOrderController(client *mongo.Client, database string, emailService *utils.EmailService) *OrderController {
	db := client.Database(database)
	return &OrderController{
		Orders:       db.Collection("orders"),
		Products:     db.Collection("products"),
		Users:        db.Collection("users"),
		EmailService: emailService,
	}
}

// OrderItemRequest is one line item of an order placement.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for placing a bulk order.
type PlaceOrderRequest struct {
	Items     []OrderItemRequest `json:"items"`
	BuyerName string             `json:"buyerName"`
	Contact   string             `json:"contact"`
	Address   string             `json:"address"`
}

// Validate checks the payload before any write.
func (p *PlaceOrderRequest) Validate() string {
	if len(p.Items) == 0 {
		return "At least one product is required"
	}
	for _, item := range p.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return "Invalid product or quantity"
		}
	}
	if p.BuyerName == "" || p.Contact == "" || p.Address == "" {
		return "Buyer name, contact and address are required"
	}
	return ""
}

// LineItems converts the request items to model line items, rejecting
// product ids that do not parse.
func (p *PlaceOrderRequest) LineItems() ([]models.LineItem, string) {
	items := make([]models.LineItem, 0, len(p.Items))
	for _, item := range p.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, "Invalid product or quantity"
		}
		items = append(items, models.LineItem{ProductID: productID, Quantity: item.Quantity})
	}
	return items, ""
}

// CreateOrder places a new bulk order for the authenticated user.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.Validate(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	items, msg := req.LineItems()
	if msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Every line item must reference an existing catalogue product.
	for _, item := range items {
		count, err := oc.Products.CountDocuments(ctx, bson.M{"_id": item.ProductID})
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if count == 0 {
			utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Product with ID %s not found", item.ProductID.Hex()))
			return
		}
	}

	order := models.Order{
		Items:     items,
		BuyerName: req.BuyerName,
		Contact:   req.Contact,
		Address:   req.Address,
		Status:    models.StatusPending,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}

	result, err := oc.Orders.InsertOne(ctx, order)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	// Append to the owner's order set; on failure remove the order again
	// so the two collections never disagree.
	_, err = oc.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$push": bson.M{"orders": order.ID},
	})
	if err != nil {
		if _, delErr := oc.Orders.DeleteOne(ctx, bson.M{"_id": order.ID}); delErr != nil {
			log.Printf("failed to roll back order %s: %v", order.ID.Hex(), delErr)
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	if view, err := oc.resolveOrder(ctx, order); err == nil {
		go func(email string, view models.OrderView) {
			if err := oc.EmailService.SendOrderConfirmationEmail(email, view); err != nil {
				log.Printf("Failed to send email to %s: %v", email, err)
			}
		}(user.Email, view)
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"orderId": order.ID.Hex()})
}

// GetOrder retrieves a single order owned by the caller, line items resolved.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.Orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.WriteError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != user.ID {
		utils.WriteError(w, http.StatusForbidden, "Unauthorized")
		return
	}

	view, err := oc.resolveOrder(ctx, order)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, view)
}

// GetUserOrders retrieves all orders for the authenticated user in
// insertion order.
func (oc *OrderController) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := oc.Orders.Find(ctx, bson.M{"user": user.ID}, opts)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error decoding order")
		return
	}

	views := []models.OrderView{}
	for _, order := range orders {
		view, err := oc.resolveOrder(ctx, order)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve orders")
			return
		}
		views = append(views, view)
	}

	utils.WriteJSON(w, http.StatusOK, views)
}

// GetAllOrders retrieves every order in the system with the owning
// user's email resolved (Admin only).
func (oc *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := oc.Orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error decoding order")
		return
	}

	emails := map[primitive.ObjectID]string{}
	views := []models.OrderView{}
	for _, order := range orders {
		view, err := oc.resolveOrder(ctx, order)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve orders")
			return
		}

		email, seen := emails[order.UserID]
		if !seen {
			var owner models.User
			if err := oc.Users.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&owner); err == nil {
				email = owner.Email
			}
			emails[order.UserID] = email
		}
		view.UserEmail = email
		views = append(views, view)
	}

	utils.WriteJSON(w, http.StatusOK, views)
}

// UpdateOrderStatus sets an order's status (Admin only). Any member of
// the status enumeration is accepted from any current status; there are
// no transition guards.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var statusUpdate struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&statusUpdate); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidOrderStatus(statusUpdate.Status) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := oc.Orders.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{
		"$set": bson.M{"status": statusUpdate.Status},
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	if result.MatchedCount == 0 {
		utils.WriteError(w, http.StatusNotFound, "Order not found")
		return
	}

	var order models.Order
	if err := oc.Orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve updated order")
		return
	}

	var owner models.User
	if err := oc.Users.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&owner); err == nil {
		go func(email string, order models.Order) {
			if err := oc.EmailService.SendStatusUpdateEmail(email, order); err != nil {
				log.Printf("Failed to send email to %s: %v", email, err)
			}
		}(owner.Email, order)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// CancelOrder deletes a Pending order owned by the caller and removes
// it from the owner's order set.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.Orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.WriteError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != user.ID {
		utils.WriteError(w, http.StatusForbidden, "Unauthorized")
		return
	}
	if order.Status != models.StatusPending {
		utils.WriteError(w, http.StatusBadRequest, "Only pending orders can be canceled")
		return
	}

	// Resolve before deleting so the cancellation email still has the
	// line items.
	view, viewErr := oc.resolveOrder(ctx, order)

	// Drop the owner's reference first; the order delete is the commit
	// point. Orders are always read by their user field, so a failure
	// between the two leaves the order visible and repairable.
	if _, err := oc.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$pull": bson.M{"orders": orderID},
	}); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}
	if _, err := oc.Orders.DeleteOne(ctx, bson.M{"_id": orderID}); err != nil {
		log.Printf("order %s removed from user %s but not deleted: %v", orderID.Hex(), user.ID.Hex(), err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	if viewErr == nil {
		go func(email string, view models.OrderView) {
			if err := oc.EmailService.SendOrderCancellationEmail(email, view); err != nil {
				log.Printf("Failed to send email to %s: %v", email, err)
			}
		}(user.Email, view)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Order canceled successfully"})
}

// resolveOrder joins an order's line items against the catalogue at
// read time. Name and price are the product's current values; a product
// removed since placement resolves to an empty snapshot keeping its id.
func (oc *OrderController) resolveOrder(ctx context.Context, order models.Order) (models.OrderView, error) {
	items := make([]models.ResolvedItem, 0, len(order.Items))
	for _, item := range order.Items {
		summary := models.ProductSummary{ID: item.ProductID}
		var product models.Product
		err := oc.Products.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err == nil {
			summary.Name = product.Name
			summary.PricePerUnit = product.PricePerUnit
		} else if err != mongo.ErrNoDocuments {
			return models.OrderView{}, err
		}
		items = append(items, models.ResolvedItem{Product: summary, Quantity: item.Quantity})
	}

	return models.OrderView{
		ID:        order.ID,
		Items:     items,
		BuyerName: order.BuyerName,
		Contact:   order.Contact,
		Address:   order.Address,
		Status:    order.Status,
		Total:     models.OrderTotal(items),
		CreatedAt: order.CreatedAt,
	}, nil
}
