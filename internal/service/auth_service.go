package service

import (
	"context"

	"go-shopadmin/internal/domain/model"
	"go-shopadmin/internal/logging"
	"go-shopadmin/internal/repository/dao"
	redisrepo "go-shopadmin/internal/repository/redis"
	"go-shopadmin/internal/security/jwt"
	"go-shopadmin/pkg/crypto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService issues and revokes admin sessions. Every successful login also
// appends a row to the account's login history.
type AuthService struct {
	Users     *dao.UserDAO
	Logins    *dao.UserLoginDAO
	JWT       *jwt.Manager
	Redis     *redisrepo.Client
	JTIPrefix string
	Logger    *logging.Logger
}

func NewAuthService(u *dao.UserDAO, l *dao.UserLoginDAO, j *jwt.Manager, r *redisrepo.Client, jtiPrefix string, logger *logging.Logger) *AuthService {
	if jtiPrefix == "" {
		jtiPrefix = "jwt:jti:"
	}
	return &AuthService{Users: u, Logins: l, JWT: j, Redis: r, JTIPrefix: jtiPrefix, Logger: logger}
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, username, password, ip, userAgent string) (*LoginResult, error) {
	if username == "" {
		return nil, missingField("username")
	}
	if password == "" {
		return nil, missingField("password")
	}
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !crypto.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.Status {
		return nil, ErrUserDisabled
	}
	if err := s.Logins.Create(ctx, &model.UserLogin{
		UserID:    user.ID,
		IP:        ip,
		UserAgent: userAgent,
	}); err != nil {
		return nil, err
	}
	jti := uuid.NewString()
	token, err := s.JWT.Generate(user.ID, user.Username, jti)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		_ = s.Redis.SetTTL(ctx, s.JTIPrefix+jti, "1", s.JWT.ExpireDuration())
	}
	s.Logger.WithContext(ctx).Info("user_login",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("ip", ip))
	return &LoginResult{Token: token, User: user}, nil
}

// Logout revokes the session's JTI so the token fails validation immediately.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if jti == "" || s.Redis == nil {
		return nil
	}
	s.Redis.Del(ctx, s.JTIPrefix+jti)
	return nil
}

// SessionActive reports whether the JTI is still registered. Without redis
// every parsed token is accepted until expiry.
func (s *AuthService) SessionActive(ctx context.Context, jti string) bool {
	if s.Redis == nil {
		return true
	}
	return s.Redis.Get(ctx, s.JTIPrefix+jti) != ""
}
