package service

import (
	"context"
	"errors"

	"Nexus_Protocols/internal/repository/mysql"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type RatingService struct {
	repo *mysql.RatingRepository
}

func NewRatingService(db *gorm.DB, _ *goredis.Client) *RatingService {
	return &RatingService{
		repo: &mysql.RatingRepository{DB: db},
	}
}

// Rate 1~5星，重复评分为覆盖；返回重算后的均值与计数
func (s *RatingService) Rate(ctx context.Context, userID, scriptID uint64, score int) (float64, int64, error) {
	if score < 1 || score > 5 {
		return 0, 0, ErrInvalidScore
	}
	avg, count, err := s.repo.Rate(ctx, userID, scriptID, score)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}
	return avg, count, nil
}

func (s *RatingService) UserScore(ctx context.Context, userID, scriptID uint64) (int, error) {
	return s.repo.UserScore(ctx, userID, scriptID)
}
