package handler

import (
	"errors"
	"net/http"

	"uptime_monitor/internal/middleware"
	"uptime_monitor/internal/model"
	"uptime_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler handles user resource requests
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{service: s, logger: logger}
}

// Helper to get the authentication token extracted by the middleware
func getAuthToken(c *gin.Context) string {
	return c.GetString(middleware.AuthTokenKey)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A malformed payload behaves like an empty one; the service
		// reports the missing fields.
		req = model.CreateUserRequest{}
	}

	if err := h.service.Create(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrMissingFields) || errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the new user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Query("phone"), getAuthToken(c))
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to get user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve the user"})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.UpdateUserRequest{}
	}

	if err := h.service.Update(c.Request.Context(), req, getAuthToken(c)); err != nil {
		if errors.Is(err, service.ErrMissingFields) || errors.Is(err, service.ErrNothingToUpdate) ||
			errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to update user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Query("phone"), getAuthToken(c)); err != nil {
		if errors.Is(err, service.ErrMissingFields) || errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to delete user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the specified user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// RegisterUserRoutes registers user resource routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.GetUser)
		users.PUT("", h.UpdateUser)
		users.DELETE("", h.DeleteUser)
	}
}
