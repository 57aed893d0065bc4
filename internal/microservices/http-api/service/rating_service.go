package service

import (
	"context"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/repository"
)

type RatingService interface {
	Create(ctx context.Context, mediaID, userID string, stars int, comment *string) (*models.Rating, error)
	Update(ctx context.Context, id, userID string, patch repository.RatingPatch) (*models.Rating, error)
	Delete(ctx context.Context, id, userID string) error
	ListByMedia(ctx context.Context, mediaID string) ([]models.Rating, error)
	ListByUser(ctx context.Context, userID string) ([]models.Rating, error)

	// moderation
	Pending(ctx context.Context, actor *models.User) ([]models.Rating, error)
	Approve(ctx context.Context, actor *models.User, id string) (*models.Rating, error)
	Reject(ctx context.Context, actor *models.User, id string) (*models.Rating, error)
}

type mediaExistence interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type ratingService struct {
	repo   repository.RatingRepository
	media  mediaExistence
	policy ModerationPolicy
	scores ScoreCache
}

func NewRatingService(repo repository.RatingRepository, media mediaExistence, policy ModerationPolicy, scores ScoreCache) RatingService {
	return &ratingService{
		repo:   repo,
		media:  media,
		policy: policy,
		scores: orNoop(scores),
	}
}

func validateStars(stars int) error {
	if stars < models.MinStars || stars > models.MaxStars {
		return apperror.Validation("stars must be between %d and %d", models.MinStars, models.MaxStars)
	}
	return nil
}

func (s *ratingService) requireMedia(ctx context.Context, mediaID string) error {
	if err := requireID("mediaId", mediaID); err != nil {
		return err
	}
	found, err := s.media.Exists(ctx, mediaID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !found {
		return apperror.NotFound("media not found")
	}
	return nil
}

// Create stores a new pending rating.
func (s *ratingService) Create(ctx context.Context, mediaID, userID string, stars int, comment *string) (*models.Rating, error) {
	if err := validateStars(stars); err != nil {
		return nil, err
	}
	if err := s.requireMedia(ctx, mediaID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		MediaID: mediaID,
		UserID:  userID,
		Stars:   stars,
		Comment: comment,
		Status:  models.StatusPending,
	}
	if err := s.repo.Create(ctx, rating); err != nil {
		return nil, apperror.Internal(err)
	}
	return rating, nil
}

// Update edits stars and/or comment. A changed comment on a moderated rating
// puts it back in the pending queue; stars-only edits keep the status.
func (s *ratingService) Update(ctx context.Context, id, userID string, patch repository.RatingPatch) (*models.Rating, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if patch.Stars == nil && patch.Comment == nil {
		return nil, apperror.Validation("stars or comment is required")
	}
	if patch.Stars != nil {
		if err := validateStars(*patch.Stars); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateOwned(ctx, id, userID, patch)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !updated {
		return nil, ownership(ctx, s.repo.Exists, id, "rating")
	}

	rating, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			// deleted between the two statements
			return nil, apperror.NotFound("rating not found")
		}
		return nil, apperror.Internal(err)
	}
	s.scores.Invalidate(ctx, rating.MediaID)
	return rating, nil
}

func (s *ratingService) Delete(ctx context.Context, id, userID string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	rating, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return apperror.NotFound("rating not found")
		}
		return apperror.Internal(err)
	}

	deleted, err := s.repo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return ownership(ctx, s.repo.Exists, id, "rating")
	}
	s.scores.Invalidate(ctx, rating.MediaID)
	return nil
}

// ListByMedia returns approved ratings only, newest first.
func (s *ratingService) ListByMedia(ctx context.Context, mediaID string) ([]models.Rating, error) {
	if err := s.requireMedia(ctx, mediaID); err != nil {
		return nil, err
	}
	ratings, err := s.repo.ListByMedia(ctx, mediaID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return ratings, nil
}

func (s *ratingService) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	ratings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return ratings, nil
}

func (s *ratingService) Pending(ctx context.Context, actor *models.User) ([]models.Rating, error) {
	if !s.policy.CanModerate(actor) {
		return nil, apperror.Forbidden("moderator role required")
	}
	ratings, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return ratings, nil
}

func (s *ratingService) Approve(ctx context.Context, actor *models.User, id string) (*models.Rating, error) {
	return s.transition(ctx, actor, id, models.StatusApproved)
}

func (s *ratingService) Reject(ctx context.Context, actor *models.User, id string) (*models.Rating, error) {
	return s.transition(ctx, actor, id, models.StatusRejected)
}

// transition is a no-op when the rating already has the target status.
func (s *ratingService) transition(ctx context.Context, actor *models.User, id, status string) (*models.Rating, error) {
	if !s.policy.CanModerate(actor) {
		return nil, apperror.Forbidden("moderator role required")
	}
	if err := requireID("id", id); err != nil {
		return nil, err
	}

	rating, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("rating not found")
		}
		return nil, apperror.Internal(err)
	}
	if rating.Status == status {
		return rating, nil
	}

	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("rating not found")
		}
		return nil, apperror.Internal(err)
	}
	rating.Status = status
	s.scores.Invalidate(ctx, rating.MediaID)
	return rating, nil
}
