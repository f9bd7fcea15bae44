package handler

import (
	"errors"
	"net/http"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TokenHandler handles token resource requests
type TokenHandler struct {
	service service.TokenService
	logger  zerolog.Logger
}

// NewTokenHandler creates a new TokenHandler
func NewTokenHandler(s service.TokenService, logger zerolog.Logger) *TokenHandler {
	return &TokenHandler{service: s, logger: logger}
}

func (h *TokenHandler) CreateToken(c *gin.Context) {
	var req model.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.CreateTokenRequest{}
	}

	token, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) || errors.Is(err, service.ErrUserNotFound) ||
			errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to create token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the new token"})
		}
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *TokenHandler) GetToken(c *gin.Context) {
	token, err := h.service.Get(c.Request.Context(), c.Query("id"))
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to get token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve the token"})
		}
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *TokenHandler) ExtendToken(c *gin.Context) {
	var req model.ExtendTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.ExtendTokenRequest{}
	}

	if err := h.service.Extend(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrMissingFields) || errors.Is(err, service.ErrTokenNotFound) ||
			errors.Is(err, service.ErrTokenExpired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to extend token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the token's expiration"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token extended successfully"})
}

func (h *TokenHandler) DeleteToken(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Query("id")); err != nil {
		if errors.Is(err, service.ErrMissingFields) || errors.Is(err, service.ErrTokenNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to delete token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the specified token"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token deleted successfully"})
}

// RegisterTokenRoutes registers token resource routes
func (h *TokenHandler) RegisterTokenRoutes(rg *gin.RouterGroup) {
	tokens := rg.Group("/tokens")
	{
		tokens.POST("", h.CreateToken)
		tokens.GET("", h.GetToken)
		tokens.PUT("", h.ExtendToken)
		tokens.DELETE("", h.DeleteToken)
	}
}
