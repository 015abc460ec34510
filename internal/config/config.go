package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`
	Postgres struct {
		DSN         string `mapstructure:"dsn"`
		MaxOpen     int    `mapstructure:"max_open"`
		MaxIdle     int    `mapstructure:"max_idle"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"postgres"`
	Redis struct {
		Addr      string `mapstructure:"addr"`
		Password  string `mapstructure:"password"`
		DB        int    `mapstructure:"db"`
		JTIPrefix string `mapstructure:"jti_prefix"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers    []string `mapstructure:"brokers"`
		AuditTopic string   `mapstructure:"audit_topic"`
		QueueSize  int      `mapstructure:"queue_size"`
		Workers    int      `mapstructure:"workers"`
		MaxBatch   int      `mapstructure:"max_batch"`
		MaxWaitMS  int      `mapstructure:"max_wait_ms"`
	} `mapstructure:"kafka"`
	Etcd struct {
		Endpoints []string `mapstructure:"endpoints"`
		TTL       int      `mapstructure:"ttl"`
	} `mapstructure:"etcd"`
	JWT struct {
		Secret        string `mapstructure:"secret"`
		ExpireSeconds int    `mapstructure:"expire_seconds"`
		Issuer        string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	AppMeta struct {
		Name    string `mapstructure:"name"`
		Version string `mapstructure:"version"`
		Env     string `mapstructure:"env"`
	} `mapstructure:"app_meta"`
	// Orders.CompleteStatusIDs is the set of order statuses counted toward a
	// marketing code's attribution total.
	Orders struct {
		CompleteStatusIDs []int `mapstructure:"complete_status_ids"`
	} `mapstructure:"orders"`
	OTel struct {
		Endpoint     string  `mapstructure:"endpoint"`
		Insecure     bool    `mapstructure:"insecure"`
		SamplerRatio float64 `mapstructure:"sampler_ratio"`
		Enable       bool    `mapstructure:"enable"`
	} `mapstructure:"otel"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	v.SetDefault("app_meta.name", "go-shopadmin")
	v.SetDefault("app_meta.version", "v1")
	v.SetDefault("app_meta.env", "dev")
	v.SetDefault("orders.complete_status_ids", []int{5})
	v.SetDefault("kafka.queue_size", 10000)
	v.SetDefault("kafka.workers", 1)
	v.SetDefault("kafka.max_batch", 50)
	v.SetDefault("kafka.max_wait_ms", 20)
	v.SetDefault("otel.enable", false)
	v.SetDefault("otel.sampler_ratio", 1.0)
	v.SetDefault("otel.insecure", true)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.HTTP.Addr == "" {
		return nil, errors.New("http.addr required")
	}
	if c.JWT.Secret == "" || len(c.JWT.Secret) < 16 {
		return nil, fmt.Errorf("jwt.secret too short (>=16)")
	}
	if c.JWT.ExpireSeconds <= 0 {
		return nil, fmt.Errorf("jwt.expire_seconds must >0")
	}
	if c.OTel.Enable {
		if c.OTel.Endpoint == "" {
			return nil, errors.New("otel.endpoint required when otel.enable=true")
		}
		if c.OTel.SamplerRatio < 0 || c.OTel.SamplerRatio > 1 {
			return nil, errors.New("otel.sampler_ratio must be in [0,1]")
		}
	}
	if c.Redis.JTIPrefix == "" {
		c.Redis.JTIPrefix = "jwt:jti:"
	}
	return &c, nil
}
