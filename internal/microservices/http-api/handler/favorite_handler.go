package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mrp/internal/microservices/http-api/dto"
	"mrp/internal/microservices/http-api/service"
)

type FavoriteHandler struct {
	svc         service.FavoriteService
	requireAuth gin.HandlerFunc
}

func NewFavoriteHandler(svc service.FavoriteService, requireAuth gin.HandlerFunc) *FavoriteHandler {
	return &FavoriteHandler{svc: svc, requireAuth: requireAuth}
}

func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.requireAuth, h.List)
	rg.POST("", h.requireAuth, h.Add)
	rg.DELETE("/:mediaId", h.requireAuth, h.Remove)
	rg.GET("/:mediaId/status", h.requireAuth, h.Status)
	rg.POST("/:mediaId/toggle", h.requireAuth, h.Toggle)

	// Public
	rg.GET("/:mediaId/count", h.Count)
}

// List user's favorited media, most recent first
func (h *FavoriteHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.ListForUser(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMediaList(list))
}

// Add is idempotent: favoriting twice still answers 201.
func (h *FavoriteHandler) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.svc.Add(ctx, user.ID, req.MediaID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FavoriteStatusResponse{MediaID: req.MediaID, IsFavorite: true})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Remove(ctx, user.ID, c.Param("mediaId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "favorite removed"})
}

func (h *FavoriteHandler) Status(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	mediaID := c.Param("mediaId")
	fav, err := h.svc.IsFavorite(ctx, user.ID, mediaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FavoriteStatusResponse{MediaID: mediaID, IsFavorite: fav})
}

func (h *FavoriteHandler) Toggle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	mediaID := c.Param("mediaId")
	fav, err := h.svc.Toggle(ctx, user.ID, mediaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FavoriteStatusResponse{MediaID: mediaID, IsFavorite: fav})
}

func (h *FavoriteHandler) Count(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	mediaID := c.Param("mediaId")
	count, err := h.svc.CountForMedia(ctx, mediaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FavoriteCountResponse{MediaID: mediaID, Count: count})
}
