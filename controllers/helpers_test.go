package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"go-bulkorder/controllers"
	"go-bulkorder/middleware"
	"go-bulkorder/models"
	"go-bulkorder/routes"
	"go-bulkorder/utils"
)

const testDatabase = "bulkorder_test"

type testEnv struct {
	client *mongo.Client
	db     *mongo.Database
	router *mux.Router
	tokens *utils.TokenService
}

// setupTestEnv wires the full router against a scratch database. Tests
// are skipped unless MONGO_TEST_URI points at a reachable MongoDB.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	client, err := utils.ConnectDB(uri)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	// Clean state per test.
	require.NoError(t, client.Database(testDatabase).Drop(context.Background()))

	tokens := utils.NewTokenService("test-secret")
	emailService := utils.NewEmailService("", "")
	auth := middleware.NewAuth(client, testDatabase, tokens)

	router := mux.NewRouter()
	routes.RegisterRoutes(
		router,
		auth,
		controllers.NewUserController(client, testDatabase, tokens),
		controllers.NewProductController(client, testDatabase),
		controllers.NewOrderController(client, testDatabase, emailService),
		controllers.NewAnalyticsController(client, testDatabase),
	)

	return &testEnv{
		client: client,
		db:     client.Database(testDatabase),
		router: router,
		tokens: tokens,
	}
}

// seedUser inserts a user directly and returns it with a valid token.
func (env *testEnv) seedUser(t *testing.T, email string, admin bool) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		Email:    email,
		Password: string(hash),
		IsAdmin:  admin,
		Orders:   []primitive.ObjectID{},
	}
	result, err := env.db.Collection("users").InsertOne(context.Background(), user)
	require.NoError(t, err)
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := env.tokens.Generate(&user)
	require.NoError(t, err)
	return &user, token
}

// seedProduct inserts a catalogue product directly.
func (env *testEnv) seedProduct(t *testing.T, name string, price float64, productType string) models.Product {
	t.Helper()

	product := models.Product{Name: name, PricePerUnit: price, Type: productType}
	result, err := env.db.Collection("products").InsertOne(context.Background(), product)
	require.NoError(t, err)
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product
}

// do performs a request against the router, JSON-encoding body when set
// and attaching token as a bearer credential when non-empty.
func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}
