package service

import (
	"context"
	"errors"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/pkg"
	"Nexus_Protocols/internal/repository/mysql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ModerationService struct {
	scripts *mysql.ScriptRepository
	users   *mysql.UserRepository
	smtp    pkg.SMTPConfig
}

func NewModerationService(db *gorm.DB, _ *goredis.Client, smtp pkg.SMTPConfig) *ModerationService {
	return &ModerationService{
		scripts: &mysql.ScriptRepository{DB: db},
		users:   &mysql.UserRepository{DB: db},
		smtp:    smtp,
	}
}

func (s *ModerationService) ListPending(ctx context.Context) ([]model.Script, error) {
	return s.scripts.ListPending(ctx)
}

// Approve 过审后尽力通知作者，发信失败只记日志不回滚
func (s *ModerationService) Approve(ctx context.Context, scriptID, actorID uint64) (*model.Script, error) {
	script, err := s.scripts.Approve(ctx, scriptID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	pkg.Logger.Info("script approved",
		zap.Uint64("script_id", script.ID),
		zap.Uint64("approver_id", actorID))

	if s.smtp.Enabled() {
		go s.notifyAuthor(script)
	}
	return script, nil
}

func (s *ModerationService) notifyAuthor(script *model.Script) {
	author, err := s.users.FindByID(script.AuthorID)
	if err != nil {
		return
	}
	html := pkg.ApprovalNoticeHTML(author.Username, script.Name)
	if err = pkg.SendEmail(s.smtp, author.Email, "Your script has been approved", html); err != nil {
		pkg.Logger.Warn("approval mail failed",
			zap.Uint64("script_id", script.ID),
			zap.Error(err))
	}
}

// Reject 待审记录直接删除，不留底；重复拒绝幂等
func (s *ModerationService) Reject(ctx context.Context, scriptID, actorID uint64) error {
	if err := s.scripts.Reject(ctx, scriptID, actorID); err != nil {
		return err
	}
	pkg.Logger.Info("script rejected",
		zap.Uint64("script_id", scriptID),
		zap.Uint64("actor_id", actorID))
	return nil
}
