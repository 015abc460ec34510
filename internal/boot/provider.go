package boot

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"go-shopadmin/internal/config"
	"go-shopadmin/internal/consumer/audit"
	"go-shopadmin/internal/discovery/etcd"
	"go-shopadmin/internal/domain/model"
	"go-shopadmin/internal/logging"
	"go-shopadmin/internal/metrics"
	"go-shopadmin/internal/mq/kafka"
	"go-shopadmin/internal/repository/postgres"
	redisrepo "go-shopadmin/internal/repository/redis"
	"go-shopadmin/internal/security/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	go_otel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gorm.io/plugin/opentelemetry/tracing"
)

type App struct {
	Config *config.Config
	Logger *logging.Logger
	DB     *gorm.DB
	Redis  *redisrepo.Client
	Kafka  *kafka.Producer
	Sender *kafka.AuditSender
	Etcd   *etcd.Client
	JWT    *jwt.Manager
	HTTP   *gin.Engine

	serviceKey string
	leaseID    clientv3.LeaseID
	tracerProv *trace.TracerProvider
	stopCh     chan struct{}
}

// Provider constructors for wire.
func NewPostgres(c *config.Config) (*gorm.DB, error) {
	return postgres.New(postgres.Config{DSN: c.Postgres.DSN, MaxOpen: c.Postgres.MaxOpen, MaxIdle: c.Postgres.MaxIdle})
}

func NewRedis(c *config.Config) *redisrepo.Client {
	return redisrepo.New(redisrepo.Config{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB})
}

func NewKafkaProducer(c *config.Config) *kafka.Producer {
	return kafka.NewProducer(kafka.Config{Brokers: c.Kafka.Brokers, Topic: c.Kafka.AuditTopic})
}

func NewAuditSender(c *config.Config, p *kafka.Producer, l *logging.Logger) *kafka.AuditSender {
	return kafka.NewAuditSender(p, l, c.Kafka.QueueSize, c.Kafka.Workers, c.Kafka.MaxBatch,
		time.Duration(c.Kafka.MaxWaitMS)*time.Millisecond)
}

func NewEtcd(c *config.Config) (*etcd.Client, error) {
	return etcd.New(etcd.Config{Endpoints: c.Etcd.Endpoints, TTL: c.Etcd.TTL})
}

func NewJWTManager(c *config.Config) *jwt.Manager {
	return jwt.NewManager(c.JWT.Secret, c.JWT.ExpireSeconds, c.JWT.Issuer)
}

func NewLogger(c *config.Config) (*logging.Logger, error) {
	return logging.New(c.Log.Level, c.Log.Format)
}

func NewApp(c *config.Config, l *logging.Logger, db *gorm.DB, r *redisrepo.Client, k *kafka.Producer, s *kafka.AuditSender, e *etcd.Client, j *jwt.Manager, engine *gin.Engine) *App {
	if c.Postgres.AutoMigrate {
		if err := postgres.AutoMigrateModels(db,
			&model.Marketing{},
			&model.Order{},
			&model.User{},
			&model.UserGroup{},
			&model.UserLogin{},
			&model.AuditRecord{},
		); err != nil {
			l.Error("auto_migrate_failed", zap.Error(err))
		}
	}
	app := &App{Config: c, Logger: l, DB: db, Redis: r, Kafka: k, Sender: s, Etcd: e, JWT: j, HTTP: engine, stopCh: make(chan struct{})}

	s.Start()

	if r != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.Ping(ctx); err != nil {
			l.Error("redis_ping_failed", zap.Error(err), zap.String("addr", c.Redis.Addr))
		} else {
			l.Info("redis_ping_ok", zap.String("addr", c.Redis.Addr))
		}
	}

	if e != nil && len(c.Etcd.Endpoints) > 0 {
		go app.register(e)
	}

	if c.OTel.Enable {
		app.initTracing(db, l)
	}
	return app
}

// register announces this instance under a stable ip:port key with exponential
// backoff, so a restart reuses the same key instead of accumulating stale ones.
func (a *App) register(e *etcd.Client) {
	ctx := context.Background()
	c := a.Config
	addrPort := c.HTTP.Addr
	if addrPort == "" {
		addrPort = ":8080"
	}
	port := ""
	if addrPort[0] == ':' {
		port = addrPort[1:]
	} else if _, p, err := net.SplitHostPort(addrPort); err == nil {
		port = p
	}
	if port == "" {
		port = "0"
	}
	ip := firstNonLoopbackIPv4()
	if ip == "" {
		ip = "127.0.0.1"
	}
	serviceKey := fmt.Sprintf("/services/shopadmin/%s/%s/%s:%s", c.AppMeta.Env, c.AppMeta.Version, ip, port)
	meta := map[string]interface{}{
		"instance_id":  uuid.NewString(),
		"env":          c.AppMeta.Env,
		"version":      c.AppMeta.Version,
		"ip":           ip,
		"port":         port,
		"addr":         c.HTTP.Addr,
		"startup_unix": time.Now().Unix(),
	}
	valBytes, _ := json.Marshal(meta)
	val := string(valBytes)

	const maxAttempts = 5
	for attempt := 0; ; {
		leaseID, err := e.Register(ctx, serviceKey, val, int64(c.Etcd.TTL))
		if err != nil {
			attempt++
			if attempt >= maxAttempts {
				a.Logger.Error("etcd_register_failed", zap.Error(err), zap.Int("attempt", attempt))
				return
			}
			backoff := time.Duration(1<<attempt) * 100 * time.Millisecond
			a.Logger.Error("etcd_register_retry", zap.Error(err), zap.Int("attempt", attempt), zap.Duration("backoff", backoff))
			time.Sleep(backoff)
			continue
		}
		a.serviceKey = serviceKey
		a.leaseID = leaseID
		metrics.EtcdUp.Set(1)
		a.Logger.Info("etcd_registered", zap.String("key", serviceKey))
		return
	}
}

func (a *App) initTracing(db *gorm.DB, l *logging.Logger) {
	c := a.Config
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(c.OTel.Endpoint)}
	if c.OTel.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	} else {
		opts = append(opts, otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}
	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		l.Error("otel_exporter_init_failed", zap.Error(err))
		return
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(c.AppMeta.Name),
		semconv.ServiceVersionKey.String(c.AppMeta.Version),
	))
	sampler := trace.ParentBased(trace.TraceIDRatioBased(c.OTel.SamplerRatio))
	a.tracerProv = trace.NewTracerProvider(trace.WithBatcher(exp), trace.WithResource(res), trace.WithSampler(sampler))
	go_otel.SetTracerProvider(a.tracerProv)
	l.Info("otel_tracer_provider_initialized")
	if db != nil {
		if err := db.Use(tracing.NewPlugin()); err != nil {
			l.Error("gorm_tracing_plugin_failed", zap.Error(err))
		} else {
			l.Info("gorm_tracing_plugin_enabled")
		}
	}
}

// RunAuditConsumer starts the in-process audit consumer when enabled. It
// stops when the app closes.
func (a *App) RunAuditConsumer() {
	c := audit.NewConsumer(audit.Config{
		Brokers: a.Config.Kafka.Brokers,
		Topic:   a.Config.Kafka.AuditTopic,
		GroupID: a.Config.AppMeta.Name + "-audit",
	}, a.DB, a.Logger)
	go func() {
		<-a.stopCh
		_ = c.Close()
	}()
	go func() {
		if err := c.Run(context.Background()); err != nil {
			a.Logger.Error("audit_consumer_stopped", zap.Error(err))
		}
	}()
}

func (a *App) Close() {
	if a.Etcd != nil && a.serviceKey != "" && a.leaseID != 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.Etcd.Deregister(ctx, a.serviceKey, a.leaseID); err != nil {
			a.Logger.Error("etcd_deregister_failed", zap.Error(err))
		}
		metrics.EtcdUp.Set(0)
	}
	if a.Sender != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.Sender.Close(ctx)
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.Logger.Error("db_close_error", zap.Error(err))
			}
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("redis_close_error", zap.Error(err))
		}
	}
	if a.Kafka != nil {
		if err := a.Kafka.Close(); err != nil {
			a.Logger.Error("kafka_close_error", zap.Error(err))
		}
	}
	if a.Etcd != nil {
		if err := a.Etcd.Close(); err != nil {
			a.Logger.Error("etcd_close_error", zap.Error(err))
		}
	}
	if a.tracerProv != nil {
		if err := a.tracerProv.Shutdown(context.Background()); err != nil {
			a.Logger.Error("otel_tracer_shutdown_error", zap.Error(err))
		}
	}
	if a.stopCh != nil {
		close(a.stopCh)
	}
}

func firstNonLoopbackIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip = ip.To4(); ip != nil {
				return ip.String()
			}
		}
	}
	return ""
}
