package service

import (
	"context"
	"fmt"
	"time"

	"go-shopadmin/internal/domain/model"
	"go-shopadmin/internal/logging"
	"go-shopadmin/internal/pkg/cache"
	"go-shopadmin/internal/repository/dao"
	"go-shopadmin/pkg/crypto"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService owns administrator accounts and their credentials. Plain
// passwords never reach storage; hashing happens here.
type UserService struct {
	Users  *dao.UserDAO
	Groups *dao.UserGroupDAO
	Logins *dao.UserLoginDAO
	DB     *gorm.DB
	GroupC cache.Cache // user_group_id -> display name
	Logger *logging.Logger
}

func NewUserService(u *dao.UserDAO, g *dao.UserGroupDAO, l *dao.UserLoginDAO, db *gorm.DB, c cache.Cache, logger *logging.Logger) *UserService {
	return &UserService{Users: u, Groups: g, Logins: l, DB: db, GroupC: c, Logger: logger}
}

type UserParams struct {
	Username    string `json:"username"`
	UserGroupID int64  `json:"user_group_id"`
	Password    string `json:"password"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	Image       string `json:"image"`
	Status      bool   `json:"status"`
}

func (s *UserService) AddUser(ctx context.Context, p UserParams) (int64, error) {
	if p.Username == "" {
		return 0, missingField("username")
	}
	if p.Password == "" {
		return 0, missingField("password")
	}
	if p.Email == "" {
		return 0, missingField("email")
	}
	existing, err := s.Users.GetByUsername(ctx, p.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrDuplicateUsername
	}
	hash, err := crypto.HashPassword(p.Password)
	if err != nil {
		return 0, err
	}
	id, err := s.Users.Create(ctx, &model.User{
		Username:    p.Username,
		UserGroupID: p.UserGroupID,
		Password:    hash,
		Firstname:   p.Firstname,
		Lastname:    p.Lastname,
		Email:       p.Email,
		Image:       p.Image,
		Status:      p.Status,
	})
	if err != nil {
		return 0, err
	}
	s.Logger.WithContext(ctx).Info("user_created", zap.Int64("id", id), zap.String("username", p.Username))
	return id, nil
}

// EditUser rewrites the profile fields and, only when a new password was
// supplied, replaces the stored hash. Both writes share one transaction so a
// failed password change never leaves a half-updated profile.
func (s *UserService) EditUser(ctx context.Context, id int64, p UserParams) error {
	if p.Username == "" {
		return missingField("username")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		users := s.Users.WithTx(tx)
		u, err := users.GetByUsername(ctx, p.Username)
		if err != nil {
			return err
		}
		if u != nil && u.ID != id {
			return ErrDuplicateUsername
		}
		if err := users.Update(ctx, id, &model.User{
			Username:    p.Username,
			UserGroupID: p.UserGroupID,
			Firstname:   p.Firstname,
			Lastname:    p.Lastname,
			Email:       p.Email,
			Image:       p.Image,
			Status:      p.Status,
		}); err != nil {
			return err
		}
		if p.Password != "" {
			hash, err := crypto.HashPassword(p.Password)
			if err != nil {
				return err
			}
			return users.UpdatePassword(ctx, id, hash)
		}
		return nil
	})
}

// EditPassword hashes the new password and stores it; any outstanding reset
// code is revoked in the same statement.
func (s *UserService) EditPassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return missingField("password")
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, id, hash)
}

// EditResetCode attaches an opaque reset code to the account with the given
// email, matched case-insensitively.
func (s *UserService) EditResetCode(ctx context.Context, email, code string) error {
	if email == "" {
		return missingField("email")
	}
	return s.Users.UpdateResetCode(ctx, email, code)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.Users.Delete(ctx, id)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.Users.GetByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.Users.GetByUsername(ctx, username)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.Users.GetByEmail(ctx, email)
}

func (s *UserService) GetUserByResetCode(ctx context.Context, code string) (*model.User, error) {
	return s.Users.GetByResetCode(ctx, code)
}

type UserDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	UserGroup string    `json:"user_group"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	Status    bool      `json:"status"`
	DateAdded time.Time `json:"date_added"`
}

type ListUsersResult struct {
	List  []UserDTO `json:"list"`
	Total int64     `json:"total"`
}

// ListUsers pages accounts and resolves each group display name. Names go
// through the layered cache; the rows themselves are always re-read.
func (s *UserService) ListUsers(ctx context.Context, p dao.UserListParams) (*ListUsersResult, error) {
	users, err := s.Users.List(ctx, p)
	if err != nil {
		return nil, err
	}
	total, err := s.Users.Count(ctx, p.Filter)
	if err != nil {
		return nil, err
	}
	res := &ListUsersResult{List: make([]UserDTO, 0, len(users)), Total: total}
	for _, u := range users {
		res.List = append(res.List, UserDTO{
			ID:        u.ID,
			Username:  u.Username,
			UserGroup: s.groupName(ctx, u.UserGroupID),
			Firstname: u.Firstname,
			Lastname:  u.Lastname,
			Email:     u.Email,
			Image:     u.Image,
			Status:    u.Status,
			DateAdded: u.DateAdded,
		})
	}
	return res, nil
}

func (s *UserService) TotalUsers(ctx context.Context, f dao.UserFilter) (int64, error) {
	return s.Users.Count(ctx, f)
}

func (s *UserService) TotalUsersByGroupID(ctx context.Context, groupID int64) (int64, error) {
	return s.Users.CountByGroupID(ctx, groupID)
}

func (s *UserService) TotalUsersByEmail(ctx context.Context, email string) (int64, error) {
	return s.Users.CountByEmail(ctx, email)
}

func (s *UserService) ListGroups(ctx context.Context) ([]model.UserGroup, error) {
	return s.Groups.List(ctx)
}

type LoginHistoryResult struct {
	List  []model.UserLogin `json:"list"`
	Total int64             `json:"total"`
}

func (s *UserService) LoginHistory(ctx context.Context, userID int64, start, limit int) (*LoginHistoryResult, error) {
	list, err := s.Logins.ListByUserID(ctx, userID, start, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.Logins.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &LoginHistoryResult{List: list, Total: total}, nil
}

func (s *UserService) groupName(ctx context.Context, groupID int64) string {
	key := fmt.Sprint("ugroup:name:", groupID)
	if s.GroupC != nil {
		if v, _ := s.GroupC.Get(ctx, key); v != "" {
			return v
		}
	}
	g, err := s.Groups.GetByID(ctx, groupID)
	if err != nil || g == nil {
		return ""
	}
	if s.GroupC != nil {
		_ = s.GroupC.SetEX(ctx, key, g.Name, 60*time.Second)
	}
	return g.Name
}
