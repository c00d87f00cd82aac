package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/Changes18/poepoe/apperrors"
	"github.com/Changes18/poepoe/middleware"
	"github.com/Changes18/poepoe/models"
	"github.com/Changes18/poepoe/repository"
	"github.com/Changes18/poepoe/utils"
)

// UserController handles registration, login and profile updates
type UserController struct {
	Users repository.UserStore
}

// NewUserController creates a new UserController
func NewUserController(users repository.UserStore) *UserController {
	return &UserController{Users: users}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid input"))
		return
	}
	if body.Username == "" || body.Password == "" {
		apperrors.HandleError(w, apperrors.InvalidInput("Username and password are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := uc.Users.FindByUsername(ctx, body.Username)
	if err == nil {
		apperrors.HandleError(w, apperrors.InvalidInput("User already exists"))
		return
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Registration failed", err))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error hashing password", err))
		return
	}

	role := body.Role
	if role == "" {
		role = "user"
	}

	user := &models.User{
		Username: body.Username,
		Password: string(hashedPassword),
		Role:     role,
	}
	if _, err := uc.Users.Insert(ctx, user); err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error creating user", err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful",
	})
}

// Login handles user authentication and issues a JWT
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid input"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByUsername(ctx, creds.Username)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.InvalidInput("User not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Login failed", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusUnauthorized, "Invalid password", nil))
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error generating token", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user.Public(),
		"token":   token,
	})
}

// UpdateProfile lets a user change their own username and/or password
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apperrors.HandleError(w, apperrors.ErrUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if caller.ID.Hex() != id {
		apperrors.HandleError(w, apperrors.New(http.StatusForbidden, "Forbidden: you can only edit your own profile", nil))
		return
	}

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid input"))
		return
	}
	if body.Username == "" && body.Password == "" {
		apperrors.HandleError(w, apperrors.InvalidInput("Nothing to update"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := repository.UserUpdate{}
	if body.Username != "" {
		existing, err := uc.Users.FindByUsername(ctx, body.Username)
		if err == nil && existing.ID != caller.ID {
			apperrors.HandleError(w, apperrors.InvalidInput("Username already taken"))
			return
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Profile update failed", err))
			return
		}
		update.Username = body.Username
	}
	if body.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error hashing password", err))
			return
		}
		update.Password = string(hashed)
	}

	updated, err := uc.Users.Update(ctx, caller.ID, update)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.NotFound("User not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Profile update failed", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated",
		"user":    updated.Public(),
	})
}
