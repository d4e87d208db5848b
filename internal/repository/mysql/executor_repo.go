package mysql

import (
	"context"

	"Nexus_Protocols/internal/model"

	"gorm.io/gorm"
)

type ExecutorRepository struct {
	DB *gorm.DB
}

func (r *ExecutorRepository) Create(ctx context.Context, executor *model.Executor) error {
	return r.DB.WithContext(ctx).Create(executor).Error
}

func (r *ExecutorRepository) FindByID(ctx context.Context, id uint64) (*model.Executor, error) {
	var executor model.Executor
	err := r.DB.WithContext(ctx).First(&executor, id).Error
	return &executor, err
}

func (r *ExecutorRepository) Update(ctx context.Context, id uint64, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.Executor{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ExecutorRepository) Delete(ctx context.Context, id uint64) error {
	tx := r.DB.WithContext(ctx).Delete(&model.Executor{}, id)
	return tx.Error
}

func (r *ExecutorRepository) List(ctx context.Context) ([]model.Executor, error) {
	var list []model.Executor
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}
