package handlers

import (
	"net/http"

	"sublet_backend/internal/services"
	"sublet_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// MatchingHandler - подбор кандидатов, свайпы, взаимные матчи и рекомендации
type MatchingHandler struct {
	*BaseHandler
	matchingService       services.MatchingService
	swipeService          services.SwipeService
	recommendationService services.RecommendationService
}

func NewMatchingHandler(
	base *BaseHandler,
	matchingService services.MatchingService,
	swipeService services.SwipeService,
	recommendationService services.RecommendationService,
) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:           base,
		matchingService:       matchingService,
		swipeService:          swipeService,
		recommendationService: recommendationService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	renter := r.Group("/renters/me")
	{
		renter.GET("/matches", h.ListingMatches)
		renter.POST("/swipes", h.RenterSwipe)
		renter.GET("/mutual-matches", h.MutualListings)
		renter.GET("/recommendations", h.Recommendations)
	}

	listing := r.Group("/listings/:id")
	{
		listing.GET("/matches", h.RenterMatches)
		listing.POST("/swipes", h.ListingSwipe)
		listing.GET("/mutual-matches", h.MutualRenters)
	}
}

// --- сторона арендатора ---

func (h *MatchingHandler) ListingMatches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	res, err := h.matchingService.ListingMatchesForRenter(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MatchingHandler) RenterSwipe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.RenterSwipeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.swipeService.RenterSwipe(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MatchingHandler) MutualListings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	res, err := h.swipeService.MutualForRenter(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MatchingHandler) Recommendations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	res, err := h.recommendationService.ForRenter(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// --- сторона листинга ---

func (h *MatchingHandler) RenterMatches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	res, err := h.matchingService.RenterMatchesForListing(c.Request.Context(), h.GetDB(c), userID, listingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MatchingHandler) ListingSwipe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ListingSwipeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	res, err := h.swipeService.ListingSwipe(c.Request.Context(), h.GetDB(c), userID, listingID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MatchingHandler) MutualRenters(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	listingID, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	res, err := h.swipeService.MutualForListing(h.GetDB(c), userID, listingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
