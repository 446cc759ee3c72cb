package providers

import (
	"recstore/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: structures.Storage{
			DataDir:     "data",
			FileMode:    0644,
			MaxBodySize: 1 << 20,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyDataDir(t *testing.T) {
	c := validConfig()
	c.Storage.DataDir = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_SnapshotNeedsPathAndInterval(t *testing.T) {
	c := validConfig()
	c.Snapshot = structures.SnapshotConfig{Enabled: true, SaveInterval: time.Minute}
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Snapshot = structures.SnapshotConfig{Enabled: true, FilePath: "/tmp/snap.zst"}
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Snapshot = structures.SnapshotConfig{Enabled: true, FilePath: "/tmp/snap.zst", SaveInterval: 500 * time.Millisecond}
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Snapshot = structures.SnapshotConfig{Enabled: true, FilePath: "/tmp/snap.zst", SaveInterval: time.Minute}
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_DisabledSnapshotIgnored(t *testing.T) {
	c := validConfig()
	c.Snapshot = structures.SnapshotConfig{Enabled: false}
	assert.NoError(t, NewCnfValidator(c).Validate())
}
