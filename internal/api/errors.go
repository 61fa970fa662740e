package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pohioki/foodgram-project-react/internal/service"
)

// abortWithServiceError maps service sentinel errors onto HTTP statuses:
// validation and conflicts are 400, ownership failures 403, missing
// resources 404, everything else 500.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoIngredients),
		errors.Is(err, service.ErrDuplicateIngredients),
		errors.Is(err, service.ErrIngredientAmountLow),
		errors.Is(err, service.ErrIngredientAmountHigh),
		errors.Is(err, service.ErrIngredientUnknown),
		errors.Is(err, service.ErrCookingTimeLow),
		errors.Is(err, service.ErrCookingTimeHigh),
		errors.Is(err, service.ErrTagUnknown),
		errors.Is(err, service.ErrTagNameTaken),
		errors.Is(err, service.ErrTagColorTaken),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, service.ErrAlreadyInCart),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrReservedUsername),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
