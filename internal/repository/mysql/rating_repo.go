package mysql

import (
	"context"
	"errors"

	"Nexus_Protocols/internal/model"

	"gorm.io/gorm"
)

type RatingRepository struct {
	DB *gorm.DB
}

// Rate 同一用户重复评分为覆盖；聚合值在同一事务内由评分表重算，
// 不做增量维护，rating/rating_count不会和明细漂移
func (r *RatingRepository) Rate(ctx context.Context, userID, scriptID uint64, score int) (float64, int64, error) {
	var avg float64
	var count int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Script{}, "id = ? AND status = ?", scriptID, model.ScriptStatusApproved).Error; err != nil {
			return err
		}

		var existing model.ScriptRating
		err := tx.Where("script_id = ? AND user_id = ?", scriptID, userID).First(&existing).Error
		switch {
		case err == nil:
			if err = tx.Model(&existing).Update("score", score).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err = tx.Create(&model.ScriptRating{ScriptID: scriptID, UserID: userID, Score: score}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		row := tx.Model(&model.ScriptRating{}).
			Where("script_id = ?", scriptID).
			Select("COALESCE(AVG(score), 0), COUNT(*)").
			Row()
		if err = row.Scan(&avg, &count); err != nil {
			return err
		}

		return tx.Model(&model.Script{}).Where("id = ?", scriptID).
			Updates(map[string]any{"rating": avg, "rating_count": count}).Error
	})
	return avg, count, err
}

func (r *RatingRepository) UserScore(ctx context.Context, userID, scriptID uint64) (int, error) {
	var rating model.ScriptRating
	err := r.DB.WithContext(ctx).
		Where("script_id = ? AND user_id = ?", scriptID, userID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return rating.Score, err
}
