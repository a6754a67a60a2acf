package handlers

import (
	"net/http"

	"exam-service/internal/middleware"
	"exam-service/internal/models"
	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     int    `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.Validation(err.Error()))
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := h.Service.Signup(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "User created successfully", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.Validation(err.Error()))
		return
	}

	result, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Logged in successfully", result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := c.MustGet(middleware.ContextClaims).(*service.Claims)
	if !ok {
		respondError(c, service.Unauthorized("Unauthorized"))
		return
	}
	if err := h.Service.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Logged out successfully", nil)
}
