package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env    string       `mapstructure:"env"`
	Server ServerConfig `mapstructure:"http_server"`
	Pg     PgConfig     `mapstructure:"postgres"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
	Cache  CacheConfig  `mapstructure:"catalog_cache"`
}

type ServerConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CORSOrigins []string      `mapstructure:"cors_origins"`
}

type PgConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Db       string `mapstructure:"db"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	AppName  string `mapstructure:"app_name"`
}

type CacheConfig struct {
	TTL   time.Duration `mapstructure:"ttl"`
	Purge time.Duration `mapstructure:"purge"`
}

func resolvePath(cwd, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	if up, ok := findUp(cwd, p, 8); ok {
		return up
	}
	return filepath.Join(cwd, p)
}

func findUp(start, rel string, max int) (string, bool) {
	dir := start
	for i := 0; i <= max; i++ {
		p := filepath.Join(dir, rel)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

func LoadConfig() *Config {
	var cfg Config
	cwd, _ := os.Getwd()

	// 1) .env
	envPath := os.Getenv("ENV_FILE")
	if envPath == "" {
		if up, ok := findUp(cwd, ".env/local.env", 8); ok {
			envPath = up
		}
	} else {
		envPath = resolvePath(cwd, envPath)
	}
	if envPath != "" {
		_ = godotenv.Overload(envPath)
	}

	// 2) YAML via viper, with ${VAR} substitution applied before parsing
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if up, ok := findUp(cwd, "configs/local.yaml", 8); ok {
			path = up
		} else {
			log.Fatal("CONFIG_PATH not set and configs/local.yaml not found")
		}
	} else {
		path = resolvePath(cwd, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read config: %v", err)
	}
	expanded := os.ExpandEnv(string(raw))

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("env", "local")
	v.SetDefault("catalog_cache.ttl", 3*time.Minute)
	v.SetDefault("catalog_cache.purge", time.Minute)
	if err := v.ReadConfig(bytes.NewReader([]byte(expanded))); err != nil {
		log.Fatalf("parse config: %v", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &cfg
}
