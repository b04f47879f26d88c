package handler

import (
	"errors"
	"net/http"

	"userauth/internal/middleware"
	"userauth/internal/repository"
	"userauth/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	log     zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: s, log: log}
}

type registerRequest struct {
	FullName string `json:"full_name" binding:"required,min=3,max=50"`
	Phone    string `json:"phone" binding:"required,len=10,numeric"`
	Password string `json:"password" binding:"required,min=6,max=20"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Phone string `json:"phone" binding:"required,len=10,numeric"`
	// flexString: some clients send numeric passwords, coerce instead of 400
	Password flexString `json:"password" binding:"required,min=6"`
}

// response is the envelope every endpoint returns, success or failure.
type response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	UserID  int          `json:"userId,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []fieldError `json:"errors,omitempty"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorResponse(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.FullName, req.Phone, req.Password, req.Role)
	if err != nil {
		status, msg := registerStatus(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("registration error")
		}
		c.JSON(status, response{Success: false, Message: msg})
		return
	}

	c.JSON(http.StatusCreated, response{
		Success: true,
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorResponse(err))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Phone, string(req.Password))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, response{Success: false, Message: "Invalid phone number or password"})
			return
		}
		h.log.Error().Err(err).Msg("login error")
		c.JSON(http.StatusInternalServerError, response{Success: false, Message: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Signed in successfully",
		Data:    gin.H{"accessToken": token},
	})
}

// Profile returns the claims of the presented token
func (h *AuthHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "OK",
		Data: gin.H{
			"userId":   c.GetInt(middleware.AuthUserKey),
			"role":     c.GetString(middleware.AuthRoleKey),
			"username": c.GetString(middleware.AuthNameKey),
		},
	})
}

// registerStatus maps workflow outcomes to HTTP status and user-facing message.
// Internal detail never reaches the response body.
func registerStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return http.StatusBadRequest, "Provide all required fields"
	case errors.Is(err, service.ErrForbiddenRole):
		return http.StatusBadRequest, "Unauthorized role provided"
	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusBadRequest, "user already exists with provided details"
	case errors.Is(err, repository.ErrNothingInserted):
		return http.StatusInternalServerError, "Failed to register user"
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/user-registration", h.Register)
		authGroup.POST("/user-login", h.Login)
		authGroup.GET("/profile", authMW, h.Profile)
	}
}
