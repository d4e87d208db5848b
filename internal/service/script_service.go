package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/repository/mysql"
	redisrepo "Nexus_Protocols/internal/repository/redis"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ScriptService struct {
	repo     *mysql.ScriptRepository
	users    *mysql.UserRepository
	comments *mysql.CommentRepository
	saved    *mysql.SavedRepository
	rCool    *redisrepo.CooldownRepository
	rView    *redisrepo.ViewRepository
}

func NewScriptService(db *gorm.DB, rdb *goredis.Client) *ScriptService {
	return &ScriptService{
		repo:     &mysql.ScriptRepository{DB: db},
		users:    &mysql.UserRepository{DB: db},
		comments: &mysql.CommentRepository{DB: db},
		saved:    &mysql.SavedRepository{DB: db},
		rCool:    &redisrepo.CooldownRepository{RDB: rdb},
		rView:    &redisrepo.ViewRepository{RDB: rdb},
	}
}

type ScriptSubmission struct {
	Name        string
	Description string
	Code        string
	Category    string
	Thumbnail   string
	Links       []string
}

// ScriptDetail 链接与评论展开后的详情
type ScriptDetail struct {
	model.Script
	Links    []string              `json:"links"`
	Comments []model.ScriptComment `json:"comments"`
}

// Submit 提交脚本。verified/pro作者直接过审入目录，其余进待审队列；
// 同一用户两次提交间隔不得小于5分钟
func (s *ScriptService) Submit(ctx context.Context, userID uint64, sub ScriptSubmission) (*model.Script, error) {
	author, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if sub.Name == "" || sub.Description == "" || sub.Code == "" || sub.Category == "" || sub.Thumbnail == "" {
		return nil, ErrMissingField
	}
	switch sub.Category {
	case model.CategoryFree, model.CategoryPaid, model.CategoryKeySystem:
	default:
		return nil, ErrInvalidCategory
	}

	remaining, err := s.rCool.Remaining(ctx, redisrepo.CooldownScopeUpload, userID)
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, &CooldownError{Scope: redisrepo.CooldownScopeUpload, Remaining: remaining}
	}

	// 外链仅verified/pro作者保留
	links := "[]"
	if author.IsVerified() {
		valid := make([]string, 0, len(sub.Links))
		for _, l := range sub.Links {
			if strings.TrimSpace(l) != "" {
				valid = append(valid, l)
			}
		}
		raw, _ := json.Marshal(valid)
		links = string(raw)
	}

	status := model.ScriptStatusPending
	if author.IsVerified() {
		status = model.ScriptStatusApproved
	}

	script := &model.Script{
		Name:         sub.Name,
		Description:  sub.Description,
		Code:         sub.Code,
		Category:     sub.Category,
		Thumbnail:    sub.Thumbnail,
		Links:        links,
		AuthorID:     author.ID,
		AuthorName:   author.Username,
		AuthorAvatar: author.Avatar,
		AuthorRank:   author.Rank,
		Status:       status,
	}
	if err = s.repo.Create(ctx, script); err != nil {
		return nil, err
	}

	if err = s.rCool.Arm(ctx, redisrepo.CooldownScopeUpload, userID, redisrepo.UploadCooldown); err != nil {
		return nil, err
	}
	return script, nil
}

// List 目录浏览
func (s *ScriptService) List(ctx context.Context, search, category, sortBy string, page, size int) ([]model.Script, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	offset := (page - 1) * size
	return s.repo.ListApproved(ctx, search, category, sortBy, offset, size)
}

// Get 详情页。已登录用户在会话窗口内只计一次浏览，窗口过期后重新计数；
// 匿名访问每次计数
func (s *ScriptService) Get(ctx context.Context, scriptID, viewerID uint64) (*ScriptDetail, error) {
	script, err := s.repo.FindApprovedByID(ctx, scriptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	count := true
	if viewerID > 0 {
		count, err = s.rView.MarkViewed(ctx, viewerID, scriptID)
		if err != nil {
			return nil, err
		}
	}
	if count {
		if err = s.repo.IncrementViews(ctx, scriptID); err != nil {
			return nil, err
		}
		script.Views++
	}

	comments, err := s.comments.ListByScript(ctx, scriptID)
	if err != nil {
		return nil, err
	}
	return newScriptDetail(script, comments), nil
}

// Mine 脚本管理页：作者自己的全部脚本（含待审）
func (s *ScriptService) Mine(ctx context.Context, userID uint64) ([]model.Script, error) {
	return s.repo.ListByAuthor(ctx, userID)
}

// Save 保存快照到个人列表；幂等，仅首次保存计一次下载
func (s *ScriptService) Save(ctx context.Context, userID, scriptID uint64) (bool, error) {
	script, err := s.repo.FindApprovedByID(ctx, scriptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return s.saved.Save(ctx, userID, script)
}

// SavedList 保存的是历史快照，不反映脚本后续变化
func (s *ScriptService) SavedList(ctx context.Context, userID uint64) ([]model.Script, error) {
	rows, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	list := make([]model.Script, 0, len(rows))
	for _, row := range rows {
		var snap model.Script
		if err := json.Unmarshal([]byte(row.Snapshot), &snap); err != nil {
			continue
		}
		list = append(list, snap)
	}
	return list, nil
}

func newScriptDetail(script *model.Script, comments []model.ScriptComment) *ScriptDetail {
	var links []string
	if script.Links != "" {
		_ = json.Unmarshal([]byte(script.Links), &links)
	}
	if links == nil {
		links = []string{}
	}
	if comments == nil {
		comments = []model.ScriptComment{}
	}
	return &ScriptDetail{Script: *script, Links: links, Comments: comments}
}
