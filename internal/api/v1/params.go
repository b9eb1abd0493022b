package v1

import (
	"strconv"

	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/gin-gonic/gin"
)

func includeDeletedParam(c *gin.Context) (bool, error) {
	raw := c.Query("includeDeleted")
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("includeDeleted must be true or false").
			Mark(ierr.ErrValidation)
	}
	return v, nil
}
