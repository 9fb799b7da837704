package resources

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the crisis-resource directory.
type Handler struct{}

// NewHandler creates a new resources handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes sets up resource routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/resources/crisis", h.Crisis)
}

// Crisis handles GET /v1/resources/crisis?location=Jamaica
func (h *Handler) Crisis(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		location = DefaultLocation
	}
	c.JSON(http.StatusOK, gin.H{"resources": ForLocation(location)})
}
