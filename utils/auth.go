package utils

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-bulkorder/models"
)

// Claims represents the JWT claims carried by a bearer credential.
type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// TokenService issues and verifies bearer credentials. The signing key
// comes from the injected configuration, never from package state.
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		key: []byte(secret),
		ttl: 24 * time.Hour,
	}
}

// Generate signs a token identifying the given user.
func (ts *TokenService) Generate(user *models.User) (string, error) {
	expirationTime := time.Now().Add(ts.ttl)
	claims := &Claims{
		UserID:  user.ID.Hex(),
		IsAdmin: user.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(ts.key)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// Parse verifies a token string and returns its claims.
func (ts *TokenService) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return ts.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SubjectID returns the user id the claims refer to.
func (c *Claims) SubjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.UserID)
}
