package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/repository/mysql"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ExecutorService struct {
	repo *mysql.ExecutorRepository
}

func NewExecutorService(db *gorm.DB, _ *goredis.Client) *ExecutorService {
	return &ExecutorService{
		repo: &mysql.ExecutorRepository{DB: db},
	}
}

type ExecutorInput struct {
	Name           string
	Description    string
	Rating         float64
	DownloadsLabel string
	Status         string
	Features       []string
	DownloadURL    string
}

// ExecutorItem features展开后的视图
type ExecutorItem struct {
	model.Executor
	Features []string `json:"features"`
}

func (s *ExecutorService) Create(ctx context.Context, in ExecutorInput) (*ExecutorItem, error) {
	if in.Name == "" || in.Description == "" || in.DownloadURL == "" {
		return nil, ErrMissingField
	}
	executor := &model.Executor{
		Name:           in.Name,
		Description:    in.Description,
		Rating:         in.Rating,
		DownloadsLabel: in.DownloadsLabel,
		Status:         in.Status,
		Features:       marshalFeatures(in.Features),
		DownloadURL:    in.DownloadURL,
	}
	if err := s.repo.Create(ctx, executor); err != nil {
		return nil, err
	}
	return newExecutorItem(executor), nil
}

func (s *ExecutorService) Update(ctx context.Context, id uint64, in ExecutorInput) (*ExecutorItem, error) {
	if in.Name == "" || in.Description == "" || in.DownloadURL == "" {
		return nil, ErrMissingField
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	fields := map[string]any{
		"name":            in.Name,
		"description":     in.Description,
		"rating":          in.Rating,
		"downloads_label": in.DownloadsLabel,
		"status":          in.Status,
		"features":        marshalFeatures(in.Features),
		"download_url":    in.DownloadURL,
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	executor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newExecutorItem(executor), nil
}

func (s *ExecutorService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ExecutorService) List(ctx context.Context) ([]ExecutorItem, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]ExecutorItem, 0, len(rows))
	for i := range rows {
		list = append(list, *newExecutorItem(&rows[i]))
	}
	return list, nil
}

// 空白项过滤后序列化
func marshalFeatures(features []string) string {
	valid := make([]string, 0, len(features))
	for _, f := range features {
		if strings.TrimSpace(f) != "" {
			valid = append(valid, f)
		}
	}
	raw, _ := json.Marshal(valid)
	return string(raw)
}

func newExecutorItem(executor *model.Executor) *ExecutorItem {
	var features []string
	if executor.Features != "" {
		_ = json.Unmarshal([]byte(executor.Features), &features)
	}
	if features == nil {
		features = []string{}
	}
	return &ExecutorItem{Executor: *executor, Features: features}
}
