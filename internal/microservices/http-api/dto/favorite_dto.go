package dto

// AddFavoriteRequest used for POST /api/favorites
type AddFavoriteRequest struct {
	MediaID string `json:"mediaId" binding:"required,uuid"`
}

type FavoriteStatusResponse struct {
	MediaID    string `json:"mediaId"`
	IsFavorite bool   `json:"isFavorite"`
}

type FavoriteCountResponse struct {
	MediaID string `json:"mediaId"`
	Count   int64  `json:"count"`
}
