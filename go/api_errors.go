package dogshelterserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	dogsapp "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/application"
	dogsports "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
	apierrors "github.com/Apurer/go-gin-dog-shelter/internal/shared/errors"
)

var responder = apierrors.NewResponder(mapDogError)

func mapDogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, dogsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, dogsapp.ErrMalformedCriteria):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, dogsapp.ErrStoreUnavailable):
		// the cause may carry connection details
		return apierrors.ErrUnavailable.WithDetail(dogsapp.ErrStoreUnavailable.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondDogServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	responder.RespondError(c, err)
}
