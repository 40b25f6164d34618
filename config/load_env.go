package config

import (
	"log/slog"
	"os"

	"github.com/subosito/gotenv"
)

const EnvDir = "config/envs"

// AppEnv returns APP_ENV, defaulting to "dev".
func AppEnv() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "dev"
}

func LoadEnv(env string) {
	envFile := EnvDir + "/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment",
			slog.String("file", envFile))
	}
}
