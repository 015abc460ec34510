package http

import (
	"context"
	"sync"
	"time"

	"go-shopadmin/internal/discovery/etcd"
	"go-shopadmin/internal/metrics"
	"go-shopadmin/internal/mq/kafka"
	redisrepo "go-shopadmin/internal/repository/redis"

	kafkaGo "github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

// HealthChecker aggregates liveness and readiness probes. Readiness results
// are cached briefly so probe storms do not hammer the dependencies.
type HealthChecker struct {
	db       *gorm.DB
	redis    *redisrepo.Client
	producer *kafka.Producer
	etcdCli  *etcd.Client

	cacheMu     sync.Mutex
	cacheResult map[string]interface{}
	cacheExpiry time.Time
	cacheTTL    time.Duration
}

func NewHealthChecker(db *gorm.DB, r *redisrepo.Client, p *kafka.Producer, e *etcd.Client) *HealthChecker {
	return &HealthChecker{db: db, redis: r, producer: p, etcdCli: e, cacheTTL: 2 * time.Second}
}

// Liveness only says the process is up; no external dependency is touched.
func (h *HealthChecker) Liveness() map[string]interface{} {
	return map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
}

type depResult struct {
	name string
	up   bool
	err  string
	dur  time.Duration
}

// Readiness checks all four dependencies concurrently and reports per-dep
// status plus durations. Any failure degrades the overall status to 503.
func (h *HealthChecker) Readiness(ctx context.Context) (map[string]interface{}, int) {
	h.cacheMu.Lock()
	if time.Now().Before(h.cacheExpiry) && h.cacheResult != nil {
		res := h.cacheResult
		h.cacheMu.Unlock()
		statusCode := 200
		if res["status"] != "ok" {
			statusCode = 503
		}
		return res, statusCode
	}
	h.cacheMu.Unlock()

	res := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
		"detail": []map[string]interface{}{},
	}

	results := make(chan depResult, 4)
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		results <- h.check(ctx, "db", metrics.DBUp, 300*time.Millisecond, func(ctx2 context.Context) error {
			sqlDB, err := h.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx2)
		})
	}()
	go func() {
		defer wg.Done()
		results <- h.check(ctx, "redis", metrics.RedisUp, 250*time.Millisecond, func(ctx2 context.Context) error {
			return h.redis.Ping(ctx2)
		})
	}()
	go func() {
		defer wg.Done()
		results <- h.check(ctx, "kafka", metrics.KafkaUp, 250*time.Millisecond, func(ctx2 context.Context) error {
			conn, err := kafkaGo.DialContext(ctx2, "tcp", h.producer.Addr.String())
			if err != nil {
				return err
			}
			return conn.Close()
		})
	}()
	go func() {
		defer wg.Done()
		results <- h.check(ctx, "etcd", metrics.EtcdUp, 250*time.Millisecond, func(ctx2 context.Context) error {
			_, err := h.etcdCli.Get(ctx2, "health")
			return err
		})
	}()

	wg.Wait()
	close(results)

	upTotal := 0
	total := 0
	for r := range results {
		total++
		if r.up {
			res[r.name] = "up"
			upTotal++
		} else if r.err == "" {
			res[r.name] = "down"
		} else {
			res[r.name] = r.err
		}
		res[r.name+"_duration_ms"] = float64(r.dur.Microseconds()) / 1000.0
		res["detail"] = append(res["detail"].([]map[string]interface{}), map[string]interface{}{
			"dep": r.name, "up": r.up, "error": r.err,
			"duration_ms": float64(r.dur.Microseconds()) / 1000.0,
		})
	}
	if upTotal < total {
		res["status"] = "degraded"
	}

	h.cacheMu.Lock()
	h.cacheResult = res
	h.cacheExpiry = time.Now().Add(h.cacheTTL)
	h.cacheMu.Unlock()

	statusCode := 200
	if res["status"] != "ok" {
		statusCode = 503
	}
	return res, statusCode
}

// ResetCache forces the next Readiness call to probe again.
func (h *HealthChecker) ResetCache() {
	h.cacheMu.Lock()
	h.cacheExpiry = time.Time{}
	h.cacheMu.Unlock()
}

func (h *HealthChecker) check(ctx context.Context, name string, gauge interface{ Set(float64) }, timeout time.Duration, probe func(context.Context) error) depResult {
	start := time.Now()
	out := depResult{name: name}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := probe(ctx2); err == nil {
		out.up = true
	} else {
		out.err = err.Error()
	}
	out.dur = time.Since(start)
	metrics.DependencyCheckDuration.WithLabelValues(name).Observe(out.dur.Seconds())
	if out.up {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
	return out
}
