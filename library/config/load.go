// Package config loads process configuration once at startup and exposes it
// as an immutable struct that is injected into components.
package config

import (
	"os"
	"path/filepath"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/vividblog/vividblog-api/library/log"
)

// LoadFromFile loads the settings file into the shared gconfig store.
// Missing files are tolerated so the process can run on env vars alone.
func LoadFromFile(cfgPath string) {
	if _, err := os.Stat(cfgPath); err != nil {
		log.Logger.Info("settings file not found, rely on env/flags",
			zap.String("config", cfgPath))
		return
	}

	gconfig.Shared.Set("cfg_dir", filepath.Dir(cfgPath))
	if err := gconfig.Shared.LoadFromFile(cfgPath); err != nil {
		log.Logger.Panic("load configuration",
			zap.Error(err),
			zap.String("config", cfgPath))
	}

	log.Logger.Info("load configuration",
		zap.String("config", cfgPath))
}
