package handlers

import (
	"net/http"

	"sublet_backend/internal/services"
	"sublet_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RenterHandler struct {
	*BaseHandler
	renterService services.RenterService
}

func NewRenterHandler(base *BaseHandler, renterService services.RenterService) *RenterHandler {
	return &RenterHandler{
		BaseHandler:   base,
		renterService: renterService,
	}
}

func (h *RenterHandler) RegisterRoutes(r *gin.RouterGroup) {
	renters := r.Group("/renters")
	{
		renters.POST("", h.Create)
		renters.GET("/me", h.GetMine)
		renters.PATCH("/me", h.PatchMine)
	}
}

func (h *RenterHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.CreateRenterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.renterService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *RenterHandler) GetMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	res, err := h.renterService.GetMine(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *RenterHandler) PatchMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.PatchRenterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.renterService.PatchMine(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
