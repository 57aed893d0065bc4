package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mrp/internal/microservices/http-api/dto"
	"mrp/internal/microservices/http-api/repository"
	"mrp/internal/microservices/http-api/service"
)

type MediaHandler struct {
	media       service.MediaService
	ratings     service.RatingService
	requireAuth gin.HandlerFunc
}

func NewMediaHandler(media service.MediaService, ratings service.RatingService, requireAuth gin.HandlerFunc) *MediaHandler {
	return &MediaHandler{media: media, ratings: ratings, requireAuth: requireAuth}
}

func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public routes
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/ratings", h.ListRatings)

	// Authenticated routes, owner checks happen in the service
	rg.POST("", h.requireAuth, h.Create)
	rg.PUT("/:id", h.requireAuth, h.Update)
	rg.DELETE("/:id", h.requireAuth, h.Delete)
	rg.POST("/:id/ratings", h.requireAuth, h.Rate)
}

// List serves both ?query= search and the filter/sort parameters.
func (h *MediaHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if query, ok := c.GetQuery("query"); ok {
		list, err := h.media.List(ctx, query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.FromMediaList(list))
		return
	}

	filter := repository.MediaFilter{
		Genre:     c.Query("genre"),
		MediaType: c.Query("type"),
	}
	for _, p := range []struct {
		key    string
		target **int
	}{
		{"year", &filter.Year},
		{"minYear", &filter.MinYear},
		{"maxYear", &filter.MaxYear},
		{"maxAge", &filter.MaxAge},
	} {
		v, err := optionalInt(c, p.key)
		if err != nil {
			respondError(c, err)
			return
		}
		*p.target = v
	}

	list, err := h.media.FilterAndSort(ctx, filter, c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMediaList(list))
}

func (h *MediaHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	detail, err := h.media.Detail(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMediaDetail(detail))
}

func (h *MediaHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.MediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	entry, err := h.media.Create(ctx, user.ID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: entry.ID})
}

func (h *MediaHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.MediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	entry, err := h.media.Update(ctx, c.Param("id"), user.ID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMedia(*entry))
}

func (h *MediaHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.media.Delete(ctx, c.Param("id"), user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MediaHandler) Rate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rating, err := h.ratings.Create(ctx, c.Param("id"), user.ID, *req.Stars, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IDResponse{ID: rating.ID})
}

// ListRatings returns approved ratings only.
func (h *MediaHandler) ListRatings(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ratings, err := h.ratings.ListByMedia(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatings(ratings))
}
