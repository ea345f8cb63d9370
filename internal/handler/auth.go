package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plushdex/backend/internal/model"
	"github.com/plushdex/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var form model.CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		writeValidationError(c, err.Error())
		return
	}

	if err := h.svc.Register(c.Request.Context(), form.Username, form.Password); err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.RegisterResponse{Msg: "User registered successfully!"})
}

// Token godoc
// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} model.TokenResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var form model.CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		writeValidationError(c, err.Error())
		return
	}

	token, err := h.svc.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AuthUser
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

func writeAuthError(c *gin.Context, err error) {
	switch err {
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid input"})
	case service.ErrConflict:
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "Username already registered."})
	case service.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "Invalid username or password"})
	default:
		writeStoreError(c, err)
	}
}
