// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ashare_analyst/internal/feature/auth/domain"
	"ashare_analyst/internal/feature/auth/transport/http/dto"
)

// AuthUsecase authenticates service clients.
// Following Go convention: interfaces are defined by the consumer.
type AuthUsecase interface {
	Login(ctx context.Context, clientID, secret string) (string, error)
}

// AuthHandler handles the authentication HTTP requests.
type AuthHandler struct {
	uc AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(uc AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// LoginHandler authenticates the client and returns a JWT.
//
// POST /login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "client_id and secret are required"})
		return
	}

	token, err := h.uc.Login(c.Request.Context(), req.ClientID, req.Secret)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
