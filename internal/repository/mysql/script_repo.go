package mysql

import (
	"context"
	"time"

	"Nexus_Protocols/internal/model"

	"gorm.io/gorm"
)

type ScriptRepository struct {
	DB *gorm.DB
}

func (r *ScriptRepository) Create(ctx context.Context, script *model.Script) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(script).Error; err != nil {
			return err
		}
		return insertModerationOutbox(tx, "submit", script.ID, script.AuthorID)
	})
}

func (r *ScriptRepository) FindApprovedByID(ctx context.Context, id uint64) (*model.Script, error) {
	var script model.Script
	err := r.DB.WithContext(ctx).
		First(&script, "id = ? AND status = ?", id, model.ScriptStatusApproved).Error
	return &script, err
}

// ListApproved 目录浏览：搜索词匹配名称/描述/作者，可按分类过滤
func (r *ScriptRepository) ListApproved(ctx context.Context, search, category, sortBy string, offset, limit int) ([]model.Script, error) {
	q := r.DB.WithContext(ctx).Where("status = ?", model.ScriptStatusApproved)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR description LIKE ? OR author_name LIKE ?", like, like, like)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	q = q.Order(orderClause(sortBy))

	var list []model.Script
	err := q.Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func orderClause(sortBy string) string {
	switch sortBy {
	case "oldest":
		return "created_at ASC, id ASC"
	case "most-viewed":
		return "views DESC, id DESC"
	case "most-downloaded":
		return "downloads DESC, id DESC"
	case "most-liked":
		return "like_count DESC, id DESC"
	case "highest-rated":
		return "rating DESC, id DESC"
	default: // newest
		return "created_at DESC, id DESC"
	}
}

func (r *ScriptRepository) ListPending(ctx context.Context) ([]model.Script, error) {
	var list []model.Script
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.ScriptStatusPending).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// ListByAuthor 含pending与approved，脚本管理页使用
func (r *ScriptRepository) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Script, error) {
	var list []model.Script
	err := r.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *ScriptRepository) ListApprovedByAuthor(ctx context.Context, authorID uint64) ([]model.Script, error) {
	var list []model.Script
	err := r.DB.WithContext(ctx).
		Where("author_id = ? AND status = ?", authorID, model.ScriptStatusApproved).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// Approve pending→approved单事务完成：改状态、记审核人、清零计数、写outbox
func (r *ScriptRepository) Approve(ctx context.Context, scriptID, approverID uint64) (*model.Script, error) {
	var script model.Script
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&script, "id = ? AND status = ?", scriptID, model.ScriptStatusPending).Error; err != nil {
			return err
		}
		now := time.Now()
		updates := map[string]any{
			"status":        model.ScriptStatusApproved,
			"approved_by":   approverID,
			"approved_at":   now,
			"views":         0,
			"downloads":     0,
			"like_count":    0,
			"dislike_count": 0,
			"rating":        0,
			"rating_count":  0,
		}
		if err := tx.Model(&model.Script{}).Where("id = ?", script.ID).Updates(updates).Error; err != nil {
			return err
		}
		script.Status = model.ScriptStatusApproved
		script.ApprovedBy = approverID
		script.ApprovedAt = &now
		script.Views, script.Downloads = 0, 0
		script.LikeCount, script.DislikeCount = 0, 0
		script.Rating, script.RatingCount = 0, 0
		return insertModerationOutbox(tx, "approve", script.ID, approverID)
	})
	if err != nil {
		return nil, err
	}
	return &script, nil
}

// Reject 仅pending可拒绝，记录直接删除；重复拒绝视为幂等成功
func (r *ScriptRepository) Reject(ctx context.Context, scriptID, actorID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND status = ?", scriptID, model.ScriptStatusPending).
			Delete(&model.Script{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return insertModerationOutbox(tx, "reject", scriptID, actorID)
	})
}

func (r *ScriptRepository) IncrementViews(ctx context.Context, scriptID uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Script{}).
		Where("id = ?", scriptID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// UpdateAuthorDisplay 用户改名/换头像后重写其脚本上的冗余作者字段
func (r *ScriptRepository) UpdateAuthorDisplay(ctx context.Context, authorID uint64, name, avatar string) error {
	return r.DB.WithContext(ctx).Model(&model.Script{}).
		Where("author_id = ?", authorID).
		Updates(map[string]any{"author_name": name, "author_avatar": avatar}).Error
}
