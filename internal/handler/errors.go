package handler

import (
	"errors"
	"net/http"

	"timetrack/internal/apperr"
	"timetrack/internal/middleware"
	"timetrack/internal/model"
	"timetrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	var notFound *apperr.NotFoundError
	var forbidden *apperr.ForbiddenError
	var validation *apperr.ValidationError
	var conflict *apperr.ConflictError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Msg})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": forbidden.Msg})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflict.Msg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentActor pulls the authenticated (userID, role) pair set by the auth
// middleware. Writes the error response itself when the context is broken.
func currentActor(c *gin.Context) (service.Actor, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return service.Actor{}, false
	}
	id, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return service.Actor{}, false
	}

	roleVal, exists := c.Get(middleware.RoleKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return service.Actor{}, false
	}
	role, ok := roleVal.(model.Role)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid role format"})
		return service.Actor{}, false
	}

	return service.Actor{ID: id, Role: role}, true
}

// requireAdmin is currentActor plus an ADMIN gate.
func requireAdmin(c *gin.Context) (service.Actor, bool) {
	actor, ok := currentActor(c)
	if !ok {
		return service.Actor{}, false
	}
	if !actor.Admin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return service.Actor{}, false
	}
	return actor, true
}
