package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	path := os.Getenv("REMINDME_RUNTIME_PATH")
	if path == "" {
		path = ".remindme"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func IsDebug() bool {
	return os.Getenv("REMINDME_DEBUG") == "1"
}
