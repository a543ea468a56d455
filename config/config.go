package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database   Database
	Redis      Redis
	Blob       Blob
	Session    Session
	LoggerMode LoggerMode
}

type Database struct {
	DSN string
}

// Redis.URL left empty selects the in-process change notifier.
type Redis struct {
	URL string
}

type Blob struct {
	Dir     string
	BaseURL string
}

type Session struct {
	RequestTimeout    time.Duration
	SearchLimit       int
	AvatarMaxBytes    int64
	SendRatePerSecond int
}

type LoggerMode struct {
	Development bool
	Level       string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("chatline")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("session.searchlimit", 10)
	v.SetDefault("session.avatarmaxbytes", 5*1024*1024)
	v.SetDefault("blob.dir", "data/blobs")
	v.SetDefault("blob.baseurl", "http://localhost:8080/blobs")
	v.SetDefault("loggermode.level", "info")
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, err
	}
	return &c, nil
}
