package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"mrp/internal/microservices/http-api/dto"
	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/service"
)

type RatingHandler struct {
	svc              service.RatingService
	requireAuth      gin.HandlerFunc
	requireModerator gin.HandlerFunc
}

func NewRatingHandler(svc service.RatingService, requireAuth, requireModerator gin.HandlerFunc) *RatingHandler {
	return &RatingHandler{svc: svc, requireAuth: requireAuth, requireModerator: requireModerator}
}

func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(h.requireAuth)

	// author only
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)

	// moderation
	rg.GET("/pending", h.requireModerator, h.Pending)
	rg.POST("/:id/approve", h.requireModerator, h.Approve)
	rg.POST("/:id/reject", h.requireModerator, h.Reject)
}

func (h *RatingHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rating, err := h.svc.Update(ctx, c.Param("id"), user.ID, req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRating(*rating))
}

func (h *RatingHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("id"), user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RatingHandler) Pending(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ratings, err := h.svc.Pending(ctx, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatings(ratings))
}

func (h *RatingHandler) Approve(c *gin.Context) {
	h.moderate(c, h.svc.Approve)
}

func (h *RatingHandler) Reject(c *gin.Context) {
	h.moderate(c, h.svc.Reject)
}

type moderationFunc func(ctx context.Context, actor *models.User, id string) (*models.Rating, error)

func (h *RatingHandler) moderate(c *gin.Context, action moderationFunc) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rating, err := action(ctx, user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRating(*rating))
}
