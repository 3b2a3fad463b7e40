package handlers

import (
	"net/http"

	"sublet_backend/internal/services"
	"sublet_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

func (h *ListingHandler) RegisterRoutes(r *gin.RouterGroup) {
	listings := r.Group("/listings")
	{
		listings.POST("", h.Create)
		listings.GET("/mine", h.Mine)
		listings.GET("/:id", h.Get)
		listings.PATCH("/:id", h.Patch)
		listings.PUT("/:id/active", h.SetActive)
	}
}

func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.CreateListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.listingService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ListingHandler) Get(c *gin.Context) {
	listingID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	res, err := h.listingService.Get(h.GetDB(c), listingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ListingHandler) Mine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	res, err := h.listingService.Mine(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": res})
}

func (h *ListingHandler) Patch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.PatchListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.listingService.Patch(c.Request.Context(), h.GetDB(c), userID, listingID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ListingHandler) SetActive(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.listingService.SetActive(c.Request.Context(), h.GetDB(c), userID, listingID, *req.IsActive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
