package handlers

import (
	"net/http"

	"homechef-api/models"
	"homechef-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health and root endpoints; the CLI overrides it
var Version = "dev"

// Health reports liveness (public)
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Home Chef API",
		"version": Version,
	})
}

// Root is the welcome document (public)
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hello Chef",
		"docs":    "/state-machine",
		"health":  "/health",
		"roles":   []models.UserRole{models.RoleUser, models.RoleChef, models.RoleAdmin},
	})
}

// StateMachineInfo returns the order lifecycle for informational purposes
func (h *Handler) StateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stateMachine":   statemachine.GetAllTransitions(),
		"terminalStates": []models.OrderStatus{models.OrderDelivered, models.OrderCancelled},
		"description":    "Home Chef order lifecycle",
	})
}
