package dogshelterserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	doghttpmapper "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/http/mapper"
	dogsports "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
	apierrors "github.com/Apurer/go-gin-dog-shelter/internal/shared/errors"
)

// DogAPI wires HTTP transport with the dogs bounded context service.
type DogAPI struct {
	service dogsports.Service
}

// NewDogAPI creates a DogAPI backed by the provided service.
func NewDogAPI(service dogsports.Service) DogAPI {
	return DogAPI{service: service}
}

// Get /api/dogs
// Lists dogs, optionally filtered by breed and availability
func (api *DogAPI) ListDogs(c *gin.Context) {
	criteria := doghttpmapper.ToCriteria(c.Request.URL.Query())
	dogs, err := api.service.ListDogs(c.Request.Context(), criteria)
	if err != nil {
		respondDogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doghttpmapper.FromDomainList(dogs))
}

// Get /api/dogs/:dogId
// Find dog by ID
func (api *DogAPI) GetDogById(c *gin.Context) {
	raw := c.Param("dogId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("dogId must be an integer"))
		return
	}
	dog, err := api.service.GetDog(c.Request.Context(), id)
	if err != nil {
		respondDogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doghttpmapper.FromDomain(dog))
}

// Get /api/breeds
// Lists the distinct breeds known to the shelter
func (api *DogAPI) ListBreeds(c *gin.Context) {
	breeds, err := api.service.ListBreeds(c.Request.Context())
	if err != nil {
		respondDogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doghttpmapper.FromBreeds(breeds))
}
