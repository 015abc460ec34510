package admin

import (
	"go-shopadmin/internal/config"
	"go-shopadmin/internal/logging"
	"go-shopadmin/internal/mq/kafka"
	"go-shopadmin/internal/security/jwt"
	"go-shopadmin/internal/service"
)

// Dependencies is the shared constructor argument for the admin handlers.
type Dependencies struct {
	Auth      *service.AuthService
	User      *service.UserService
	Marketing *service.MarketingService
	JWT       *jwt.Manager
	Config    *config.Config
	Sender    *kafka.AuditSender
	Logger    *logging.Logger
}
