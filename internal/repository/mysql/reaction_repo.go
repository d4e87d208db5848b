package mysql

import (
	"context"
	"errors"

	"Nexus_Protocols/internal/model"

	"gorm.io/gorm"
)

// 反应变更结果
const (
	ReactionAdded    = "added"
	ReactionRemoved  = "removed"
	ReactionSwitched = "switched"
)

type ReactionRepository struct {
	DB *gorm.DB
}

// React 点赞/点踩状态机：无记录则新增；同类则撤销；异类则切换。
// 切换时在同一事务内完成一增一减，保证计数与成员集一致。
func (r *ReactionRepository) React(ctx context.Context, userID, scriptID uint64, kind int8) (string, error) {
	var result string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Script{}, "id = ? AND status = ?", scriptID, model.ScriptStatusApproved).Error; err != nil {
			return err
		}

		var rel model.ScriptReaction
		err := tx.Where("script_id = ? AND user_id = ?", scriptID, userID).First(&rel).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			rel = model.ScriptReaction{ScriptID: scriptID, UserID: userID, Kind: kind}
			if err = tx.Create(&rel).Error; err != nil {
				return err
			}
			result = ReactionAdded
			return adjustReactionCount(tx, scriptID, kind, +1)
		}

		if rel.Kind == kind {
			// 重复同类操作 = 撤销
			if err = tx.Delete(&rel).Error; err != nil {
				return err
			}
			result = ReactionRemoved
			return adjustReactionCount(tx, scriptID, kind, -1)
		}

		// like<->dislike切换
		old := rel.Kind
		if err = tx.Model(&rel).Update("kind", kind).Error; err != nil {
			return err
		}
		if err = adjustReactionCount(tx, scriptID, old, -1); err != nil {
			return err
		}
		result = ReactionSwitched
		return adjustReactionCount(tx, scriptID, kind, +1)
	})
	return result, err
}

// 计数防负数，对账兜底
func adjustReactionCount(tx *gorm.DB, scriptID uint64, kind int8, delta int64) error {
	col := "like_count"
	if kind == model.ReactionDislike {
		col = "dislike_count"
	}
	if delta > 0 {
		return tx.Model(&model.Script{}).Where("id = ?", scriptID).
			UpdateColumn(col, gorm.Expr(col+" + ?", delta)).Error
	}
	return tx.Model(&model.Script{}).Where("id = ?", scriptID).
		UpdateColumn(col, gorm.Expr("CASE WHEN "+col+" > 0 THEN "+col+" - 1 ELSE 0 END")).Error
}

func (r *ReactionRepository) Current(ctx context.Context, userID, scriptID uint64) (int8, error) {
	var rel model.ScriptReaction
	err := r.DB.WithContext(ctx).
		Where("script_id = ? AND user_id = ?", scriptID, userID).
		First(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return rel.Kind, err
}

func (r *ReactionRepository) GetCounts(ctx context.Context, scriptID uint64) (int64, int64, error) {
	var s model.Script
	err := r.DB.WithContext(ctx).
		Select("id", "like_count", "dislike_count").
		First(&s, scriptID).Error
	if err != nil {
		return 0, 0, err
	}
	return s.LikeCount, s.DislikeCount, nil
}
