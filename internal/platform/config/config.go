package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures process level configuration. Every field is read from the
// environment; empty backing-service URLs select the in-process fallbacks.
type Server struct {
	Addr            string        `env:"STUDYLAB_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Tracing  TracingConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type RedisConfig struct {
	URL           string        `env:"REDIS_URL"`
	PoolSize      int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns  int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout   time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout   time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout  time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	StudyCacheTTL time.Duration `env:"STUDY_CACHE_TTL" envDefault:"5m"`
}

type KafkaConfig struct {
	Brokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	NotifyTopic string   `env:"KAFKA_NOTIFY_TOPIC" envDefault:"study-notifications"`
	ClientID    string   `env:"KAFKA_CLIENT_ID" envDefault:"studylab"`
}

// TracingConfig enables OTLP/HTTP span export. Tracing stays a no-op when
// Endpoint is empty.
type TracingConfig struct {
	Endpoint    string `env:"OTEL_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"studylab"`
}

// FromEnv parses Server from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg, err := env.ParseAs[Server]()
	if err != nil {
		return Server{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (s Server) Validate() error {
	switch strings.ToLower(s.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", s.Log.Format)
	}
	if s.Redis.URL != "" && s.Redis.StudyCacheTTL <= 0 {
		return fmt.Errorf("STUDY_CACHE_TTL must be positive when REDIS_URL is set")
	}
	if len(s.Kafka.Brokers) > 0 && s.Kafka.NotifyTopic == "" {
		return fmt.Errorf("KAFKA_NOTIFY_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

func (s Server) UsesPostgres() bool { return s.Database.URL != "" }
func (s Server) UsesRedis() bool    { return s.Redis.URL != "" }
func (s Server) UsesKafka() bool    { return len(s.Kafka.Brokers) > 0 }
func (s Server) UsesTracing() bool  { return s.Tracing.Endpoint != "" }
