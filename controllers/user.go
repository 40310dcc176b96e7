package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"go-bulkorder/middleware"
	"go-bulkorder/models"
	"go-bulkorder/utils"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

const minPasswordLength = 6

// UserController handles registration, login and profile requests.
type UserController struct {
	Collection *mongo.Collection
	Tokens     *utils.TokenService
}

// NewUserController creates a new UserController.
func NewUserController(client *mongo.Client, database string, tokens *utils.TokenService) *UserController {
	return &UserController{
		Collection: client.Database(database).Collection("users"),
		Tokens:     tokens,
	}
}

// RegisterRequest is the credentials payload for registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration payload before any write.
func (r *RegisterRequest) Validate() string {
	if !emailRegex.MatchString(r.Email) {
		return "Invalid email format. Email must include '@' and a valid domain (e.g., user@example.com)."
	}
	if len(r.Password) < minPasswordLength {
		return "Password must be at least 6 characters long"
	}
	return ""
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if msg := req.Validate(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.WriteError(w, http.StatusBadRequest, "User already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		IsAdmin:  false,
		Orders:   []primitive.ObjectID{},
	}
	if _, err := uc.Collection.InsertOne(ctx, user); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		// Same message as a wrong password; do not reveal which one failed.
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := uc.Tokens.Generate(&user)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"isAdmin": user.IsAdmin,
	})
}

// GetProfile resolves the authenticated caller's role.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Could not parse user from context")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"isAdmin": user.IsAdmin})
}
