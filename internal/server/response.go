package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/lumen/internal/analytics"
	apperrors "github.com/julianstephens/lumen/internal/errors"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/service"
	"github.com/julianstephens/lumen/internal/storage"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *apperrors.AppError    `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

func respondJSON(c *gin.Context, status int, data interface{}, meta map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Data: data, Meta: meta})
}

func respondError(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.AbortWithStatusJSON(appErr.Status, Envelope{Error: appErr})
}

// toAppError maps domain errors to their HTTP shape. Unknown errors are
// reported as internal without leaking their text.
func toAppError(err error) *apperrors.AppError {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrHabitNotFound), errors.Is(err, service.ErrMoodNotFound):
		return apperrors.Wrap(err, apperrors.ErrNotFound.Code, http.StatusNotFound, err.Error())
	case errors.Is(err, analytics.ErrUnknownFormat), errors.Is(err, storage.ErrReadOnlyCollection):
		return apperrors.Wrap(err, apperrors.ErrBadRequest.Code, http.StatusBadRequest, err.Error())
	}
	return apperrors.FromError(err)
}

func badRequest(message string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrBadRequest.Code, http.StatusBadRequest, message)
}
