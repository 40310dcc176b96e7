package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"go-bulkorder/models"
	"go-bulkorder/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// Auth authenticates bearer credentials and resolves them to users.
// A token whose user no longer exists is treated the same as an
// invalid token.
type Auth struct {
	Users  *mongo.Collection
	Tokens *utils.TokenService
}

// NewAuth creates the authentication gate over the users collection.
func NewAuth(client *mongo.Client, database string, tokens *utils.TokenService) *Auth {
	return &Auth{
		Users:  client.Database(database).Collection("users"),
		Tokens: tokens,
	}
}

// Middleware verifies the Authorization header and attaches the resolved
// user to the request context.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteError(w, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		claims, err := a.Tokens.Parse(parts[1])
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := claims.SubjectID()
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := a.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserContextKey, &user)))
	})
}

// AdminOnly ensures that the resolved user has admin privileges.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok || !user.IsAdmin {
			utils.WriteError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user attached by Middleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}
