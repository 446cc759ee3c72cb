package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"recstore/internal/structures"
	"strings"
	"time"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)

	v.SetDefault("storage.dataDir", "data")
	v.SetDefault("storage.fileMode", 0644)
	v.SetDefault("storage.atomicWrites", false)
	v.SetDefault("storage.lockWrites", false)
	v.SetDefault("storage.maxBodySize", 1<<20)

	v.SetDefault("snapshot.enabled", false)
	v.SetDefault("snapshot.filePath", "snapshots/recstore.zst")
	v.SetDefault("snapshot.saveInterval", 5*time.Minute)
	v.SetDefault("snapshot.restoreOnStart", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", ".")
	v.SetDefault("logger.console", true)
	v.SetDefault("logger.rotation.maxSize", 100)
	v.SetDefault("logger.rotation.maxBackups", 3)
	v.SetDefault("logger.rotation.maxAge", 28)
	v.SetDefault("logger.rotation.compress", false)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.size", 16)
	v.SetDefault("cache.ttl", 10*time.Second)

	v.SetDefault("metrics.enabled", false)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	v.BindEnv("webServer.port", "RECSTORE_PORT")
	v.BindEnv("storage.dataDir", "RECSTORE_DATA_DIR")
	v.BindEnv("logger.level", "RECSTORE_LOG_LEVEL")
	v.BindEnv("logger.dir", "RECSTORE_LOG_DIR")
	v.BindEnv("cache.enabled", "RECSTORE_CACHE_ENABLED")
	v.BindEnv("snapshot.enabled", "RECSTORE_SNAPSHOT_ENABLED")

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	err := v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "RecordStore"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
