package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated caller from context.
func CurrentActor(c *gin.Context) model.Actor {
	val, ok := c.Get(middleware.ActorContextKey)
	if !ok {
		return model.Actor{}
	}
	actor, _ := val.(model.Actor)
	return actor
}

func orderNumber(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number <= 0 {
		respondError(c, http.StatusBadRequest, "invalid order number")
		return 0, false
	}
	return number, true
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// bindError answers a failed ShouldBindJSON: field validation failures are
// unprocessable, anything else is a malformed request.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		respondError(c, http.StatusUnprocessableEntity, "invalid field "+fe.Field()+": failed "+fe.Tag())
		return
	}
	respondError(c, http.StatusBadRequest, "malformed request body")
}

// writeError maps domain failures onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainErrors.ErrClosedOrder),
		errors.Is(err, domainErrors.ErrConflict),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, domainErrors.ErrUnknownStatus),
		errors.Is(err, domainErrors.ErrInvalidQueueRequest),
		errors.Is(err, domainErrors.ErrUnsupportedQueryShape):
		status = http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrUnauthorizedTransition),
		errors.Is(err, domainErrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domainErrors.ErrAnnotationRequired),
		errors.Is(err, domainErrors.ErrSchedulingDataRequired),
		errors.Is(err, domainErrors.ErrInvalidOrder),
		errors.Is(err, domainErrors.ErrInvalidTaxID),
		errors.Is(err, domainErrors.ErrInvalidAccount):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		respondError(c, status, "internal error")
		return
	}
	respondError(c, status, err.Error())
}
