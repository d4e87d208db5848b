package mysql

import (
	"context"
	"encoding/json"

	"Nexus_Protocols/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedRepository struct {
	DB *gorm.DB
}

// Save 幂等保存：快照JSON入库，唯一键(user_id, script_id)冲突时不重复、
// 不动计数；仅首次保存将脚本下载数+1
func (r *SavedRepository) Save(ctx context.Context, userID uint64, script *model.Script) (bool, error) {
	snapshot, err := json.Marshal(script)
	if err != nil {
		return false, err
	}

	var saved bool
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "script_id"}},
			DoNothing: true,
		}).Create(&model.SavedScript{
			UserID:   userID,
			ScriptID: script.ID,
			Snapshot: string(snapshot),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 已保存过
			return nil
		}
		saved = true
		return tx.Model(&model.Script{}).Where("id = ?", script.ID).
			UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
	})
	return saved, err
}

func (r *SavedRepository) ListByUser(ctx context.Context, userID uint64) ([]model.SavedScript, error) {
	var list []model.SavedScript
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error
	return list, err
}
