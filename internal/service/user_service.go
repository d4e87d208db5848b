package service

import (
	"context"
	"errors"
	"strings"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/pkg"
	"Nexus_Protocols/internal/repository/mysql"
	redisrepo "Nexus_Protocols/internal/repository/redis"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     *mysql.UserRepository
	scripts  *mysql.ScriptRepository
	rSession *redisrepo.SessionRepository
}

func NewUserService(db *gorm.DB, rdb *goredis.Client) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		scripts:  &mysql.ScriptRepository{DB: db},
		rSession: &redisrepo.SessionRepository{RDB: rdb},
	}
}

// Register 注册即登录；email/username任一重复都拒绝
func (s *UserService) Register(email, password, username string) (*model.User, *pkg.Pair, error) {
	exists, err := s.repo.ExistsByIdentity(email, username)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrDuplicateIdentity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:    email,
		Username: username,
		Password: string(hash),
		Avatar:   DefaultAvatar(username),
		Role:     model.RoleUser,
		Rank:     model.RankNone,
		Balance:  0,
	}
	if err = s.repo.Create(user); err != nil {
		return nil, nil, err
	}

	token, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Login 不区分邮箱错还是密码错
func (s *UserService) Login(email, password string) (*model.User, *pkg.Pair, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// 将token写入redis（单会话）
func (s *UserService) issueSession(user *model.User) (*pkg.Pair, error) {
	token, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err = s.rSession.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rSession.DeleteUserToken(usrID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

func (s *UserService) Me(usrID uint64) (*model.User, error) {
	user, err := s.repo.FindByID(usrID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// Profile 公开主页：用户资料+其已过审脚本
func (s *UserService) Profile(ctx context.Context, usrID uint64) (*model.User, []model.Script, error) {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	scripts, err := s.scripts.ListApprovedByAuthor(ctx, usrID)
	if err != nil {
		return nil, nil, err
	}
	return user, scripts, nil
}

type ProfileUpdate struct {
	Username string
	Avatar   string
	Bio      string
	Location string
	Website  string
	Twitter  string
	Github   string
	Discord  string
}

// UpdateProfile 改名会同步重写该用户脚本上的冗余作者字段；历史评论保持当时快照
func (s *UserService) UpdateProfile(ctx context.Context, usrID uint64, upd ProfileUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if upd.Username == "" {
		return nil, ErrMissingField
	}
	if upd.Username != user.Username {
		if _, err = s.repo.FindByUsername(upd.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	avatar := upd.Avatar
	if avatar == "" {
		avatar = DefaultAvatar(upd.Username)
	}

	fields := map[string]any{
		"username": upd.Username,
		"avatar":   avatar,
		"bio":      upd.Bio,
		"location": upd.Location,
		"website":  upd.Website,
		"twitter":  upd.Twitter,
		"github":   upd.Github,
		"discord":  upd.Discord,
	}
	if err = s.repo.UpdateProfile(usrID, fields); err != nil {
		return nil, err
	}
	if err = s.scripts.UpdateAuthorDisplay(ctx, usrID, upd.Username, avatar); err != nil {
		return nil, err
	}
	return s.repo.FindByID(usrID)
}

// ChangePassword 登录态修改密码，成功后下线
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(usrID)
}

// 默认头像取用户名首字符，按rune截取兼容多字节用户名
func DefaultAvatar(username string) string {
	for _, r := range username {
		return strings.ToUpper(string(r))
	}
	return ""
}
