package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Postgres DBConfig
	Redis    RedisConfig
	S3       S3Config
	Cookie   Cookie
	Logger   Logger
	Pipeline PipelineConfig
}

type ServerConfig struct {
	AppVersion         string
	Port               string
	Mode               string
	JwtSecretKey       string
	DefaultUserQuotaMB int64
}

// PipelineConfig bounds the media ingestion pipeline.
type PipelineConfig struct {
	Workers          int
	VideoTimeoutSec  int
	RetentionSec     int
	ScratchDir       string
	FFmpegBin        string
	MaxUploadSizeMB  int64
	ThumbnailMaxEdge int
	JPEGQuality      int
}

func (p PipelineConfig) VideoTimeout() time.Duration {
	if p.VideoTimeoutSec <= 0 {
		return 120 * time.Second
	}
	return time.Duration(p.VideoTimeoutSec) * time.Second
}

func (p PipelineConfig) Retention() time.Duration {
	if p.RetentionSec <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(p.RetentionSec) * time.Second
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
}

type Cookie struct {
	Name     string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	UseTLS        bool
}

type S3Config struct {
	Endpoint    string
	Region      string
	AccessKey   string
	SecretKey   string
	MediaBucket string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
