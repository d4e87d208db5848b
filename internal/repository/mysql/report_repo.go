package mysql

import (
	"context"

	"Nexus_Protocols/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.DB.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) List(ctx context.Context) ([]model.Report, error) {
	var list []model.Report
	err := r.DB.WithContext(ctx).Order("id DESC").Find(&list).Error
	return list, err
}

// Delete 幂等硬删除：即使已不存在也视为成功
func (r *ReportRepository) Delete(ctx context.Context, id uint64) error {
	tx := r.DB.WithContext(ctx).Delete(&model.Report{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	return nil
}
