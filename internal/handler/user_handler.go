package handler

import (
	"context"
	"net/http"

	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
)

type UserService interface {
	List(ctx context.Context) ([]model.PublicUser, error)
	Register(ctx context.Context, name, username, password string) (*model.PublicUser, error)
	Authenticate(ctx context.Context, username, password string) (*model.PublicUser, error)
	Delete(ctx context.Context, id string) error
}

type TokenGenerator interface {
	GenerateToken(userID string) (string, error)
}

type UserHandler struct {
	users  UserService
	tokens TokenGenerator
}

func NewUserHandler(users UserService, tokens TokenGenerator) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the public user plus a session token.
type AuthResponse struct {
	model.PublicUser
	Token string `json:"token"`
}

// List godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Success      200  {array}   model.PublicUser
// @Failure      500  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Signup godoc
// @Summary      Register a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request  body      SignupRequest  true  "New user"
// @Success      201      {object}  AuthResponse
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	h.respondWithToken(c, http.StatusCreated, user)
}

// Login godoc
// @Summary      Log in
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  AuthResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

// Delete godoc
// @Summary      Delete a user
// @Description  Removes the user and scrubs it from every board's assignees and creators.
// @Tags         Users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) respondWithToken(c *gin.Context, status int, user *model.PublicUser) {
	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(status, AuthResponse{PublicUser: *user, Token: token})
}
