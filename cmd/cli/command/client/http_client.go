package client

// http_client.go = typed wrapper around the MRP HTTP API for the mrp CLI.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mrp/internal/microservices/http-api/dto"
	"mrp/internal/microservices/http-api/service"
)

// APIError is a non-success answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken makes every following request authenticated.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends body as JSON, checks the status against want and decodes the answer into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var e dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Users

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	req := dto.RegisterRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/users/register", req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var out dto.LoginResponse
	req := dto.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", req, http.StatusOK, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *HTTPClient) Statistics(ctx context.Context, username string) (*service.Statistics, error) {
	var out service.Statistics
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(username)+"/statistics", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Media

// ListMedia passes params straight through as the query string (query, genre, sortBy, ...).
func (c *HTTPClient) ListMedia(ctx context.Context, params url.Values) ([]dto.MediaResponse, error) {
	path := "/api/media"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out []dto.MediaResponse
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetMedia(ctx context.Context, id string) (*dto.MediaDetailResponse, error) {
	var out dto.MediaDetailResponse
	if err := c.do(ctx, http.MethodGet, "/api/media/"+url.PathEscape(id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateMedia(ctx context.Context, req dto.MediaRequest) (string, error) {
	var out dto.IDResponse
	if err := c.do(ctx, http.MethodPost, "/api/media", req, http.StatusCreated, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *HTTPClient) DeleteMedia(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/media/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
}

// Ratings

func (c *HTTPClient) RateMedia(ctx context.Context, mediaID string, stars int, comment *string) (string, error) {
	var out dto.IDResponse
	req := dto.CreateRatingRequest{Stars: &stars, Comment: comment}
	if err := c.do(ctx, http.MethodPost, "/api/media/"+url.PathEscape(mediaID)+"/ratings", req, http.StatusCreated, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *HTTPClient) MediaRatings(ctx context.Context, mediaID string) ([]dto.RatingResponse, error) {
	var out []dto.RatingResponse
	if err := c.do(ctx, http.MethodGet, "/api/media/"+url.PathEscape(mediaID)+"/ratings", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateRating(ctx context.Context, id string, req dto.UpdateRatingRequest) (*dto.RatingResponse, error) {
	var out dto.RatingResponse
	if err := c.do(ctx, http.MethodPut, "/api/ratings/"+url.PathEscape(id), req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteRating(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/ratings/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
}

func (c *HTTPClient) PendingRatings(ctx context.Context) ([]dto.RatingResponse, error) {
	var out []dto.RatingResponse
	if err := c.do(ctx, http.MethodGet, "/api/ratings/pending", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Moderate calls /approve or /reject depending on approve.
func (c *HTTPClient) Moderate(ctx context.Context, id string, approve bool) (*dto.RatingResponse, error) {
	action := "/reject"
	if approve {
		action = "/approve"
	}
	var out dto.RatingResponse
	if err := c.do(ctx, http.MethodPost, "/api/ratings/"+url.PathEscape(id)+action, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Favorites

func (c *HTTPClient) Favorites(ctx context.Context) ([]dto.MediaResponse, error) {
	var out []dto.MediaResponse
	if err := c.do(ctx, http.MethodGet, "/api/favorites", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, mediaID string) error {
	return c.do(ctx, http.MethodPost, "/api/favorites", dto.AddFavoriteRequest{MediaID: mediaID}, http.StatusCreated, nil)
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, mediaID string) error {
	return c.do(ctx, http.MethodDelete, "/api/favorites/"+url.PathEscape(mediaID), nil, http.StatusOK, nil)
}

func (c *HTTPClient) ToggleFavorite(ctx context.Context, mediaID string) (bool, error) {
	var out dto.FavoriteStatusResponse
	if err := c.do(ctx, http.MethodPost, "/api/favorites/"+url.PathEscape(mediaID)+"/toggle", nil, http.StatusOK, &out); err != nil {
		return false, err
	}
	return out.IsFavorite, nil
}
