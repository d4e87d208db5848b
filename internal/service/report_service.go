package service

import (
	"context"
	"errors"
	"strings"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/repository/mysql"
	redisrepo "Nexus_Protocols/internal/repository/redis"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ReportService struct {
	repo    *mysql.ReportRepository
	scripts *mysql.ScriptRepository
	users   *mysql.UserRepository
	rCool   *redisrepo.CooldownRepository
}

func NewReportService(db *gorm.DB, rdb *goredis.Client) *ReportService {
	return &ReportService{
		repo:    &mysql.ReportRepository{DB: db},
		scripts: &mysql.ScriptRepository{DB: db},
		users:   &mysql.UserRepository{DB: db},
		rCool:   &redisrepo.CooldownRepository{RDB: rdb},
	}
}

// File 举报进全局队列，举报人与脚本名为当时快照；5分钟冷却
func (s *ReportService) File(ctx context.Context, userID, scriptID uint64, reason string) (*model.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrMissingField
	}

	script, err := s.scripts.FindApprovedByID(ctx, scriptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	remaining, err := s.rCool.Remaining(ctx, redisrepo.CooldownScopeReport, userID)
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, &CooldownError{Scope: redisrepo.CooldownScopeReport, Remaining: remaining}
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		ReporterID:   user.ID,
		ReporterName: user.Username,
		ScriptID:     script.ID,
		ScriptName:   script.Name,
		Reason:       reason,
	}
	if err = s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	if err = s.rCool.Arm(ctx, redisrepo.CooldownScopeReport, userID, redisrepo.ReportCooldown); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) List(ctx context.Context) ([]model.Report, error) {
	return s.repo.List(ctx)
}

// Dismiss 处理完直接销毁记录
func (s *ReportService) Dismiss(ctx context.Context, reportID uint64) error {
	return s.repo.Delete(ctx, reportID)
}
