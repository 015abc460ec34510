package http

import (
	"context"
	"time"

	"go-shopadmin/internal/config"
	"go-shopadmin/internal/discovery/etcd"
	"go-shopadmin/internal/logging"
	"go-shopadmin/internal/mq/kafka"
	redisrepo "go-shopadmin/internal/repository/redis"
	"go-shopadmin/internal/security/jwt"
	adm "go-shopadmin/internal/server/http/handler/admin"
	"go-shopadmin/internal/server/http/middleware"
	obs "go-shopadmin/internal/server/http/middleware/observability"
	sec "go-shopadmin/internal/server/http/middleware/security"
	"go-shopadmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// NewRouter wires groups and middleware; business logic stays in the handlers.
func NewRouter(
	jwtm *jwt.Manager,
	logger *logging.Logger,
	producer *kafka.Producer,
	sender *kafka.AuditSender,
	db *gorm.DB,
	redis *redisrepo.Client,
	authSvc *service.AuthService,
	userSvc *service.UserService,
	marketingSvc *service.MarketingService,
	etcdCli *etcd.Client,
	cfg *config.Config,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), obs.Trace(), obs.LoggerContext(), obs.AccessLog(logger), obs.Metrics())

	hc := NewHealthChecker(db, redis, producer, etcdCli)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, hc.Liveness()) })
	r.GET("/readyz", func(c *gin.Context) {
		if c.Query("refresh") == "1" {
			hc.ResetCache()
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()
		res, code := hc.Readiness(ctx)
		c.JSON(code, res)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	d := adm.Dependencies{
		Auth: authSvc, User: userSvc, Marketing: marketingSvc,
		JWT: jwtm, Config: cfg, Sender: sender, Logger: logger,
	}
	authH := adm.NewAuthHandler(d)
	userH := adm.NewUserHandler(d)
	marketingH := adm.NewMarketingHandler(d)

	// public auth endpoints
	pub := r.Group("/admin")
	{
		pub.POST("/login", authH.Login)
		pub.POST("/password/forgotten", authH.Forgotten)
		pub.POST("/password/reset", authH.Reset)
	}

	// authenticated admin surface; mutations are audited
	grp := r.Group("/admin", sec.Auth(jwtm, authSvc), obs.Audit(sender))
	{
		grp.POST("/logout", authH.Logout)

		m := grp.Group("/marketing")
		{
			m.GET("", marketingH.List)
			m.GET("/:id", marketingH.Get)
			m.GET("/code/:code", marketingH.GetByCode)
			m.POST("", marketingH.Add)
			m.POST("/:id", marketingH.Edit)
			m.DELETE("/:id", marketingH.Delete)
		}
		u := grp.Group("/users")
		{
			u.GET("", userH.List)
			u.GET("/groups", userH.Groups)
			u.GET("/:id", userH.Get)
			u.GET("/:id/logins", userH.Logins)
			u.POST("", userH.Add)
			u.POST("/:id", userH.Edit)
			u.DELETE("/:id", userH.Delete)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(200, gin.H{"code": -8, "msg": "not found", "data": gin.H{}})
	})
	return r
}
