package app

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/utils"
)

type Config struct {
	Port           string   `yaml:"port"`
	LogMode        string   `yaml:"log_mode"`
	JWTSecretKey   string   `yaml:"jwt_secret_key"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	HierarchyDepth int      `yaml:"hierarchy_depth"`
}

// LoadConfig reads the environment, then overlays an optional YAML file named
// by CONFIG_FILE. File values win over the environment when present.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:           utils.GetEnv("PORT", "8080", log),
		LogMode:        utils.GetEnv("LOG_MODE", "development", log),
		JWTSecretKey:   utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		HierarchyDepth: utils.GetEnvAsInt("HIERARCHY_DEPTH", 5, log),
	}
	origins := utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:80,http://localhost:3000", log)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Could not read config file, using environment only", "path", path, "error", err)
		return cfg
	}
	var overlay Config
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		log.Warn("Could not parse config file, using environment only", "path", path, "error", err)
		return cfg
	}
	if overlay.Port != "" {
		cfg.Port = overlay.Port
	}
	if overlay.LogMode != "" {
		cfg.LogMode = overlay.LogMode
	}
	if overlay.JWTSecretKey != "" {
		cfg.JWTSecretKey = overlay.JWTSecretKey
	}
	if len(overlay.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = overlay.AllowedOrigins
	}
	if overlay.HierarchyDepth > 0 {
		cfg.HierarchyDepth = overlay.HierarchyDepth
	}
	return cfg
}
