// Package config loads settings file into the shared configuration.
package config

import (
	"path/filepath"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/leducanh112/Twitter-API/library/log"
)

// LoadFromFile load settings from yaml file, panic if failed
func LoadFromFile(cfgPath string) {
	gconfig.Shared.Set("cfg_dir", filepath.Dir(cfgPath))
	if err := gconfig.Shared.LoadFromFile(cfgPath); err != nil {
		log.Logger.Panic("load configuration",
			zap.Error(err),
			zap.String("config", cfgPath))
	}

	log.Logger.Info("load configuration",
		zap.String("config", cfgPath))
}

// LoadTest load settings used by integration tests
func LoadTest() {
	LoadFromFile("/opt/configs/twitter-api/settings.yml")
}
