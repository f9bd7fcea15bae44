package handler

import (
	"errors"
	"net/http"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CheckHandler handles check resource requests
type CheckHandler struct {
	service service.CheckService
	logger  zerolog.Logger
}

// NewCheckHandler creates a new CheckHandler
func NewCheckHandler(s service.CheckService, logger zerolog.Logger) *CheckHandler {
	return &CheckHandler{service: s, logger: logger}
}

func (h *CheckHandler) CreateCheck(c *gin.Context) {
	var req model.CreateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.CreateCheckRequest{}
	}

	check, err := h.service.Create(c.Request.Context(), req, getAuthToken(c))
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) || errors.Is(err, service.ErrMaxChecksReached) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to create check")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the new check"})
		}
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *CheckHandler) GetCheck(c *gin.Context) {
	check, err := h.service.Get(c.Request.Context(), c.Query("id"), getAuthToken(c))
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrCheckNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to get check")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve the check"})
		}
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *CheckHandler) UpdateCheck(c *gin.Context) {
	var req model.UpdateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.UpdateCheckRequest{}
	}

	if err := h.service.Update(c.Request.Context(), req, getAuthToken(c)); err != nil {
		if errors.Is(err, service.ErrMissingFields) || errors.Is(err, service.ErrNothingToUpdate) ||
			errors.Is(err, service.ErrCheckNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to update check")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the check"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check updated successfully"})
}

func (h *CheckHandler) DeleteCheck(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Query("id"), getAuthToken(c)); err != nil {
		if errors.Is(err, service.ErrMissingFields) || errors.Is(err, service.ErrCheckNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			h.logger.Error().Err(err).Msg("failed to delete check")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the specified check"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check deleted successfully"})
}

// RegisterCheckRoutes registers check resource routes
func (h *CheckHandler) RegisterCheckRoutes(rg *gin.RouterGroup) {
	checks := rg.Group("/checks")
	{
		checks.POST("", h.CreateCheck)
		checks.GET("", h.GetCheck)
		checks.PUT("", h.UpdateCheck)
		checks.DELETE("", h.DeleteCheck)
	}
}
