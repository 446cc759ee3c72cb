package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"recstore/internal/models"
	"recstore/internal/providers"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

var ErrNotArray = errors.New("collection file does not contain a JSON array")

const emptyCollection = "[]"

// fileWriter owns the write policy shared by every file backed store.
type fileWriter struct {
	mode   os.FileMode
	atomic bool
}

func (fw *fileWriter) write(path string, data []byte) error {
	if !fw.atomic {
		return os.WriteFile(path, data, fw.mode)
	}

	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fw.mode)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

const prettyIndent = "  "

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// FileCollectionStore keeps a collection in <dir>/<collection file>.
// Without a lock, concurrent saves race on read-modify-write and the last
// writer wins.
type FileCollectionStore struct {
	path       string
	collection models.Collection
	writer     *fileWriter
	mu         *sync.Mutex
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileCollectionStore(dir string, collection models.Collection, writer *fileWriter, lock bool, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileCollectionStore {
	s := &FileCollectionStore{
		path:       filepath.Join(dir, collection.FileName),
		collection: collection,
		writer:     writer,
		logger:     logger,
		metrics:    metrics,
	}
	if lock {
		s.mu = &sync.Mutex{}
	}
	return s
}

func (s *FileCollectionStore) Collection() models.Collection {
	return s.collection
}

func (s *FileCollectionStore) Path() string {
	return s.path
}

func (s *FileCollectionStore) Exists() (bool, error) {
	return fileExists(s.path)
}

// Ensure creates the collection file holding an empty array when it is absent.
func (s *FileCollectionStore) Ensure() (string, error) {
	exists, err := s.Exists()
	if err != nil {
		return "", err
	}
	if !exists {
		if err := s.writer.write(s.path, []byte(emptyCollection)); err != nil {
			return "", fmt.Errorf("create %s: %w", s.collection.FileName, err)
		}
		s.logger.Debugf(providers.TypeApp, "Created collection file %s", s.path)
	}
	return s.path, nil
}

func (s *FileCollectionStore) Load() ([]models.Record, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStoreDuration(s.collection.Kind.String(), "load", time.Since(start))
	}()

	return s.read()
}

func (s *FileCollectionStore) read() ([]models.Record, error) {
	content, err := s.readContent()
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("parse %s: %w", s.collection.FileName, ErrNotArray)
	}

	records := make([]models.Record, 0)
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.collection.FileName, err)
	}
	return records, nil
}

// readContent ensures the file and returns its contents once they are
// known to be valid JSON.
func (s *FileCollectionStore) readContent() ([]byte, error) {
	path, err := s.Ensure()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(content) {
		return nil, fmt.Errorf("parse %s: invalid JSON", s.collection.FileName)
	}
	return content, nil
}

// Raw returns the stored document as is, whether or not it is an array.
func (s *FileCollectionStore) Raw() (models.Record, error) {
	content, err := s.readContent()
	if err != nil {
		return nil, err
	}
	return models.Record(content), nil
}

func (s *FileCollectionStore) Save(record models.Record) (int, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStoreDuration(s.collection.Kind.String(), "save", time.Since(start))
	}()

	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	records, err := s.read()
	if err != nil {
		return 0, err
	}

	records = models.Upsert(records, record, s.collection.UniqueKey)
	if err := s.store(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *FileCollectionStore) Replace(records []models.Record) error {
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if records == nil {
		records = make([]models.Record, 0)
	}
	return s.store(records)
}

func (s *FileCollectionStore) store(records []models.Record) error {
	data, err := models.StringifyArray(records, prettyIndent)
	if err != nil {
		return err
	}
	return s.writer.write(s.path, data)
}

// FileConfigStore keeps the config object in <dir>/config.json. The file is
// only created by Save.
type FileConfigStore struct {
	path    string
	writer  *fileWriter
	metrics providers.MetricsProviderInterface
}

func NewFileConfigStore(dir string, writer *fileWriter, metrics providers.MetricsProviderInterface) *FileConfigStore {
	return &FileConfigStore{
		path:    filepath.Join(dir, models.ConfigFileName),
		writer:  writer,
		metrics: metrics,
	}
}

func (s *FileConfigStore) Path() string {
	return s.path
}

func (s *FileConfigStore) Exists() (bool, error) {
	return fileExists(s.path)
}

func (s *FileConfigStore) Load() (models.Record, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStoreDuration(models.KindConfig.String(), "load", time.Since(start))
	}()

	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Record("{}"), nil
		}
		return nil, err
	}
	if !json.Valid(content) {
		return nil, fmt.Errorf("parse %s: invalid JSON", models.ConfigFileName)
	}
	return models.Record(content), nil
}

func (s *FileConfigStore) Save(data models.Record) error {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStoreDuration(models.KindConfig.String(), "save", time.Since(start))
	}()

	content, err := data.Stringify(prettyIndent)
	if err != nil {
		return err
	}
	return s.writer.write(s.path, content)
}
