package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1|max:65535"`
}

// Storage describes where and how record files are written.
// AtomicWrites and LockWrites change the observable race behavior of
// concurrent saves and are off by default.
type Storage struct {
	DataDir      string `yaml:"dataDir" validate:"required"`
	FileMode     uint32 `yaml:"fileMode" validate:"required|uint"`
	AtomicWrites bool   `yaml:"atomicWrites"`
	LockWrites   bool   `yaml:"lockWrites"`
	MaxBodySize  int64  `yaml:"maxBodySize" validate:"required|min:1"`
}

type SnapshotConfig struct {
	Enabled        bool          `yaml:"enabled"`
	FilePath       string        `yaml:"filePath"`
	SaveInterval   time.Duration `yaml:"saveInterval"`
	RestoreOnStart bool          `yaml:"restoreOnStart"`
}

type LogRotation struct {
	MaxSize    int  `yaml:"maxSize"`
	MaxBackups int  `yaml:"maxBackups"`
	MaxAge     int  `yaml:"maxAge"`
	Compress   bool `yaml:"compress"`
}

type LoggerConfig struct {
	Level    string      `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode     uint32      `yaml:"mode" validate:"required|uint"`
	Dir      string      `yaml:"dir" validate:"required"`
	Console  bool        `yaml:"console"`
	Rotation LogRotation `yaml:"rotation"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Storage   Storage        `yaml:"storage"`
	Snapshot  SnapshotConfig `yaml:"snapshot"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
