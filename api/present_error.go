package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/engagekit/engage-backend/models"
	"github.com/engagekit/engage-backend/utils"
)

// presentError renders err on the gin context and reports whether the handler
// should stop. Unclassified errors are logged and hidden behind a 500.
func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "unexpected error: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
	return true
}
