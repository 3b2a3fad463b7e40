package handlers

import (
	"net/http"

	"sublet_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ReferenceHandler struct {
	*BaseHandler
	referenceService services.ReferenceService
	locationService  services.LocationService
}

func NewReferenceHandler(base *BaseHandler, referenceService services.ReferenceService, locationService services.LocationService) *ReferenceHandler {
	return &ReferenceHandler{
		BaseHandler:      base,
		referenceService: referenceService,
		locationService:  locationService,
	}
}

// RegisterRoutes - справочники публичные
func (h *ReferenceHandler) RegisterRoutes(r *gin.RouterGroup) {
	ref := r.Group("/reference")
	{
		ref.GET("/amenities", h.Amenities)
		ref.GET("/building-types", h.BuildingTypes)
	}
}

// RegisterProtectedRoutes - автодополнение ходит в платный API, только для авторизованных
func (h *ReferenceHandler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/locations/autocomplete", h.Autocomplete)
}

func (h *ReferenceHandler) Amenities(c *gin.Context) {
	res, err := h.referenceService.Amenities(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amenities": res})
}

func (h *ReferenceHandler) BuildingTypes(c *gin.Context) {
	res, err := h.referenceService.BuildingTypes(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"building_types": res})
}

type autocompleteQuery struct {
	Input string `form:"input" json:"input" validate:"required,max=200"`
}

func (h *ReferenceHandler) Autocomplete(c *gin.Context) {
	var q autocompleteQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	res, err := h.locationService.Autocomplete(c.Request.Context(), q.Input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": res})
}
