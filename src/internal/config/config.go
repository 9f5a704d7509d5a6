package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logs     LogsSettings   `mapstructure:"logs"`
	App      Application    `mapstructure:"app"`
	Server   ServerSettings `mapstructure:"server"`
	Hotspot  HotspotConfig  `mapstructure:"hotspot"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	Activity ActivityConfig `mapstructure:"activity"`
	Redis    Redis          `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

type LogsSettings struct {
	Level            string `mapstructure:"level"`
	Path             string `mapstructure:"log-path"`
	EnableJSONOutput bool   `mapstructure:"enable-json-output"`
}

type Application struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Timeout int    `mapstructure:"timeout"`
}

type ServerSettings struct {
	Port           string `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	ReadTimeout    int    `mapstructure:"read-timeout"`
	WriteTimeout   int    `mapstructure:"write-timeout"`
	IdleTimeout    int    `mapstructure:"idle-timeout"`
	MaxUploadBytes int64  `mapstructure:"max-upload-bytes"`
	TemplatesGlob  string `mapstructure:"templates-glob"`
}

type HotspotConfig struct {
	Script         string `mapstructure:"script"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
}

type StorageConfig struct {
	UploadDir string `mapstructure:"upload-dir"`
}

type SessionsConfig struct {
	SweepIntervalMinutes int `mapstructure:"sweep-interval-minutes"`
	IdleTimeoutMinutes   int `mapstructure:"idle-timeout-minutes"`
}

type ActivityConfig struct {
	EventLogPath    string `mapstructure:"event-log-path"`
	ActivityLogPath string `mapstructure:"activity-log-path"`
}

type Redis struct {
	Url      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	Db       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

type CacheConfig struct {
	StatsKey               string `mapstructure:"stats-key"`
	StatsExpirationSeconds int    `mapstructure:"stats-expiration-seconds"`
}

func Load() *Configuration {
	cfg := read()
	logrus.Info("Configuration loaded")

	// Override with environment variables
	port := os.Getenv("PORTAL_PORT")
	if port != "" {
		cfg.Server.Port = port
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir != "" {
		cfg.Storage.UploadDir = uploadDir
	}

	script := os.Getenv("HOTSPOT_SCRIPT")
	if script != "" {
		cfg.Hotspot.Script = script
	}

	eventLog := os.Getenv("EVENT_LOG")
	if eventLog != "" {
		cfg.Activity.EventLogPath = eventLog
	}

	activityLog := os.Getenv("ACTIVITY_LOG")
	if activityLog != "" {
		cfg.Activity.ActivityLogPath = activityLog
	}

	redisUrl := os.Getenv("REDIS_URL")
	if redisUrl != "" {
		cfg.Redis.Url = redisUrl
		cfg.Redis.Enabled = true
	}

	redisDB := os.Getenv("REDIS_DB")
	if redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.Redis.Db = db
		}
	}

	return cfg
}

func read() *Configuration {
	viper.SetConfigFile("src/internal/config/cfg.yml")
	viper.AutomaticEnv()
	viper.SetConfigType("yml")

	var config Configuration

	err := viper.ReadInConfig()
	if err != nil {
		logrus.Panicf("Error reading config file, %s", err)
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Panicf("Error unmarshalling config file, %s", err)
	}

	return &config
}
