package controllers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"go-bulkorder/models"
	"go-bulkorder/utils"
)

// AnalyticsController serves read-only aggregates over the order ledger.
type AnalyticsController struct {
	Orders *mongo.Collection
}

// NewAnalyticsController creates a new AnalyticsController.
func NewAnalyticsController(client *mongo.Client, database string) *AnalyticsController {
	return &AnalyticsController{
		Orders: client.Database(database).Collection("orders"),
	}
}

// Analytics is the order-count report returned to admins.
type Analytics struct {
	TotalOrders     int64 `json:"totalOrders"`
	DeliveredOrders int64 `json:"deliveredOrders"`
	PendingOrders   int64 `json:"pendingOrders"`
	FailedOrders    int64 `json:"failedOrders"`
}

// GetAnalytics returns order counts grouped by status (Admin only).
func (ac *AnalyticsController) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var report Analytics
	g, gctx := errgroup.WithContext(ctx)

	count := func(filter bson.M, dst *int64) func() error {
		return func() error {
			n, err := ac.Orders.CountDocuments(gctx, filter)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		}
	}

	g.Go(count(bson.M{}, &report.TotalOrders))
	g.Go(count(bson.M{"status": models.StatusDelivered}, &report.DeliveredOrders))
	g.Go(count(bson.M{"status": models.StatusPending}, &report.PendingOrders))
	g.Go(count(bson.M{"status": models.StatusFailed}, &report.FailedOrders))

	if err := g.Wait(); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch analytics data")
		return
	}

	utils.WriteJSON(w, http.StatusOK, report)
}
