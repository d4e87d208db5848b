package mysql

import (
	"context"

	"Nexus_Protocols/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.ScriptComment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

// ListByScript 最新在前
func (r *CommentRepository) ListByScript(ctx context.Context, scriptID uint64) ([]model.ScriptComment, error) {
	var list []model.ScriptComment
	err := r.DB.WithContext(ctx).
		Where("script_id = ?", scriptID).
		Order("id DESC").
		Find(&list).Error
	return list, err
}
