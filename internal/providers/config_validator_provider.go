package providers

import (
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"recstore/internal/structures"
	"time"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.Error())
	}

	if cv.conf.Snapshot.Enabled {
		if cv.conf.Snapshot.FilePath == "" {
			return errors.New("invalid config: snapshot.filePath is required when snapshots are enabled")
		}
		if cv.conf.Snapshot.SaveInterval < time.Second {
			return errors.New("invalid config: snapshot.saveInterval must be at least 1s")
		}
	}

	if cv.conf.Cache.Enabled && cv.conf.Cache.TTL < 0 {
		return errors.New("invalid config: cache.ttl must not be negative")
	}
	return nil
}
