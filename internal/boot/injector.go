package boot

import (
	"go-shopadmin/internal/config"
	"go-shopadmin/internal/discovery/etcd"
	"go-shopadmin/internal/logging"
	"go-shopadmin/internal/mq/kafka"
	"go-shopadmin/internal/pkg/cache"
	"go-shopadmin/internal/repository/dao"
	redisrepo "go-shopadmin/internal/repository/redis"
	jwtsec "go-shopadmin/internal/security/jwt"
	httpSrv "go-shopadmin/internal/server/http"
	"go-shopadmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"gorm.io/gorm"
)

// ProvideConfig wraps config.Load for wire with an external path param.
func ProvideConfig(path string) (*config.Config, error) { return config.Load(path) }

// ProvideLayeredCache builds the shared cache: local L1 backed by redis L2.
func ProvideLayeredCache(r *redisrepo.Client) cache.Cache {
	return cache.NewLayered(cache.NewMemory(), cache.NewRedisAdapter(r))
}

func ProvideMarketingService(d *dao.MarketingDAO, c *config.Config, l *logging.Logger) *service.MarketingService {
	return service.NewMarketingService(d, c.Orders.CompleteStatusIDs, l)
}

func ProvideUserService(u *dao.UserDAO, g *dao.UserGroupDAO, lg *dao.UserLoginDAO, db *gorm.DB, lc cache.Cache, l *logging.Logger) *service.UserService {
	return service.NewUserService(u, g, lg, db, lc, l)
}

func ProvideAuthService(u *dao.UserDAO, lg *dao.UserLoginDAO, j *jwtsec.Manager, r *redisrepo.Client, c *config.Config, l *logging.Logger) *service.AuthService {
	return service.NewAuthService(u, lg, j, r, c.Redis.JTIPrefix, l)
}

func ProvideRouter(j *jwtsec.Manager, l *logging.Logger, p *kafka.Producer, s *kafka.AuditSender, db *gorm.DB, r *redisrepo.Client, a *service.AuthService, u *service.UserService, m *service.MarketingService, e *etcd.Client, c *config.Config) *gin.Engine {
	return httpSrv.NewRouter(j, l, p, s, db, r, a, u, m, e, c)
}

func ProvideApp(c *config.Config, l *logging.Logger, db *gorm.DB, r *redisrepo.Client, k *kafka.Producer, s *kafka.AuditSender, e *etcd.Client, j *jwtsec.Manager, engine *gin.Engine) *App {
	return NewApp(c, l, db, r, k, s, e, j, engine)
}

var ProviderSet = wire.NewSet(
	ProvideConfig,
	NewLogger,
	NewPostgres,
	NewRedis,
	NewKafkaProducer,
	NewAuditSender,
	NewEtcd,
	NewJWTManager,
	ProvideLayeredCache,
	dao.NewMarketingDAO,
	dao.NewUserDAO,
	dao.NewUserGroupDAO,
	dao.NewUserLoginDAO,
	ProvideAuthService,
	ProvideUserService,
	ProvideMarketingService,
	ProvideRouter,
	ProvideApp,
)
