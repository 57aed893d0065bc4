package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/models"
)

const noGenre = "none"

// Statistics summarises a user's activity on the platform.
type Statistics struct {
	TotalRatingsGiven     int      `json:"totalRatingsGiven"`
	AverageScoreGiven     float64  `json:"averageScoreGiven"`
	TotalMediaCreated     int      `json:"totalMediaCreated"`
	TotalFavorites        int      `json:"totalFavorites"`
	FavoriteGenre         string   `json:"favoriteGenre"`
	TopGenres             []string `json:"topGenres"`
	AverageRatingReceived float64  `json:"averageRatingReceived"`
}

type Activity struct {
	MostRecentRating    *models.Rating `json:"mostRecentRating"`
	RatingsDistribution map[int]int    `json:"ratingsDistribution"`
}

type ratingsByUser interface {
	ListByUser(ctx context.Context, userID string) ([]models.Rating, error)
}

type mediaByOwner interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.MediaEntry, error)
}

type favoriteMedia interface {
	ListMedia(ctx context.Context, userID string) ([]models.MediaEntry, error)
}

// ProfileService serves the per-user views. Every operation is restricted to the
// caller's own username.
type ProfileService interface {
	Profile(ctx context.Context, actor *models.User, username string) (*models.User, error)
	Ratings(ctx context.Context, actor *models.User, username string) ([]models.Rating, error)
	Statistics(ctx context.Context, actor *models.User, username string) (*Statistics, error)
	Activity(ctx context.Context, actor *models.User, username string) (*Activity, error)
}

type profileService struct {
	ratings   ratingsByUser
	media     mediaByOwner
	favorites favoriteMedia
}

func NewProfileService(ratings ratingsByUser, media mediaByOwner, favorites favoriteMedia) ProfileService {
	return &profileService{
		ratings:   ratings,
		media:     media,
		favorites: favorites,
	}
}

func requireSelf(actor *models.User, username string) error {
	if actor == nil {
		return apperror.Unauthenticated("authentication required")
	}
	if actor.Username != username {
		return apperror.Forbidden("profiles are only visible to their owner")
	}
	return nil
}

func (s *profileService) Profile(ctx context.Context, actor *models.User, username string) (*models.User, error) {
	if err := requireSelf(actor, username); err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *profileService) Ratings(ctx context.Context, actor *models.User, username string) ([]models.Rating, error) {
	if err := requireSelf(actor, username); err != nil {
		return nil, err
	}
	ratings, err := s.ratings.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return ratings, nil
}

func (s *profileService) Statistics(ctx context.Context, actor *models.User, username string) (*Statistics, error) {
	if err := requireSelf(actor, username); err != nil {
		return nil, err
	}

	ratings, err := s.ratings.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	owned, err := s.media.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	favorites, err := s.favorites.ListMedia(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	stats := &Statistics{
		TotalRatingsGiven: len(ratings),
		TotalMediaCreated: len(owned),
		TotalFavorites:    len(favorites),
		FavoriteGenre:     noGenre,
		TopGenres:         []string{},
	}

	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Stars
		}
		stats.AverageScoreGiven = round2(float64(sum) / float64(len(ratings)))
	}

	top := topGenres(favorites, 3)
	if len(top) > 0 {
		stats.FavoriteGenre = top[0]
		stats.TopGenres = top
	}

	// media without approved ratings do not count towards the received average
	var received float64
	var scored int
	for _, m := range owned {
		if m.AverageScore > 0 {
			received += m.AverageScore
			scored++
		}
	}
	if scored > 0 {
		stats.AverageRatingReceived = round2(received / float64(scored))
	}
	return stats, nil
}

func (s *profileService) Activity(ctx context.Context, actor *models.User, username string) (*Activity, error) {
	if err := requireSelf(actor, username); err != nil {
		return nil, err
	}
	ratings, err := s.ratings.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	activity := &Activity{RatingsDistribution: map[int]int{}}
	if len(ratings) > 0 {
		// newest first
		recent := ratings[0]
		activity.MostRecentRating = &recent
	}
	for _, r := range ratings {
		activity.RatingsDistribution[r.Stars]++
	}
	return activity, nil
}

// topGenres counts lowercased genres across entries, most frequent first, ties by name.
func topGenres(entries []models.MediaEntry, limit int) []string {
	counts := map[string]int{}
	for _, m := range entries {
		for _, g := range strings.Split(m.Genres, ",") {
			if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
				counts[g]++
			}
		}
	}

	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})
	if len(genres) > limit {
		genres = genres[:limit]
	}
	return genres
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
