package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"recstore/internal/structures"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
)

var logFiles = map[TypeEnum]string{
	TypeApp:  "app.log",
	TypeGet:  "get.log",
	TypePost: "post.log",
}

func (t TypeEnum) String() string {
	switch t {
	case TypeGet:
		return "get"
	case TypePost:
		return "post"
	default:
		return "app"
	}
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

// GetLogTypeByRequestType picks the log category for an HTTP method.
func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	closers []io.Closer
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	info, err := os.Stat(conf.Logger.Dir)
	if err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("log dir %s is not a directory", conf.Logger.Dir)
	}

	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(logFiles))}
	for t, name := range logFiles {
		path := filepath.Join(conf.Logger.Dir, name)

		// lumberjack keeps the mode of an existing file, so create it up front
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, os.FileMode(conf.Logger.Mode))
		if err != nil {
			lp.Close()
			return nil, err
		}
		_ = f.Close()

		fileWriter := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    conf.Logger.Rotation.MaxSize,
			MaxBackups: conf.Logger.Rotation.MaxBackups,
			MaxAge:     conf.Logger.Rotation.MaxAge,
			Compress:   conf.Logger.Rotation.Compress,
		}
		lp.closers = append(lp.closers, fileWriter)

		var out io.Writer = fileWriter
		if conf.Debug || conf.Logger.Console {
			out = zerolog.MultiLevelWriter(fileWriter, zerolog.ConsoleWriter{Out: os.Stdout})
		}

		lp.loggers[t] = zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Str("type", t.String()).
			Logger()
	}

	return lp, nil
}

func (lp *LogProvider) logger(t TypeEnum) *zerolog.Logger {
	l, ok := lp.loggers[t]
	if !ok {
		l = lp.loggers[TypeApp]
	}
	return &l
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, c := range lp.closers {
		_ = c.Close()
	}
	lp.closers = nil
}
