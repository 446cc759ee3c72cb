package controllers

import (
	json "github.com/goccy/go-json"
	"io"
	"net/http"
	"recstore/internal/models"
	"recstore/internal/providers"
	"recstore/internal/services"
	"recstore/internal/structures"
	"sync"
)

const defaultMaxBodySize = 1 << 20 // 1 MB

type RecordController struct {
	logger      providers.Logger
	service     services.RecordServiceInterface
	cache       providers.CacheProviderInterface
	maxBodySize int64

	// generations counts invalidations per cache key so a load that raced
	// with a save never repopulates the cache with the older data.
	cacheMu     sync.Mutex
	generations map[string]uint64
}

func NewRecordController(conf *structures.Config, logger providers.Logger, service services.RecordServiceInterface, cache providers.CacheProviderInterface) *RecordController {
	maxBodySize := conf.Storage.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}
	return &RecordController{
		logger:      logger,
		service:     service,
		cache:       cache,
		maxBodySize: maxBodySize,
		generations: make(map[string]uint64),
	}
}

func cacheKey(kind models.Kind) string {
	return "load:" + kind.String()
}

func (rc *RecordController) generation(key string) uint64 {
	rc.cacheMu.Lock()
	defer rc.cacheMu.Unlock()
	return rc.generations[key]
}

func (rc *RecordController) cacheIfCurrent(key string, gen uint64, data []byte) {
	rc.cacheMu.Lock()
	defer rc.cacheMu.Unlock()
	if rc.generations[key] == gen {
		rc.cache.Set(key, data)
	}
}

func (rc *RecordController) invalidate(key string) {
	rc.cacheMu.Lock()
	defer rc.cacheMu.Unlock()
	rc.generations[key]++
	rc.cache.Del(key)
}

func writeJSON(w http.ResponseWriter, status int, resp *models.Response) {
	gson, err := json.MarshalNoEscape(resp)
	if err != nil {
		http.Error(w, models.MsgInternalServer, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (rc *RecordController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, key string, compute func() (*models.Response, error)) {
	if data, ok := rc.cache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	gen := rc.generation(key)
	result, err := compute()
	if err != nil {
		rc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.String(), err)
		http.Error(w, models.MsgInternalServer, http.StatusInternalServerError)
		return
	}

	gson, err := json.MarshalNoEscape(result)
	if err != nil {
		rc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "encode response: %s", err)
		http.Error(w, models.MsgInternalServer, http.StatusInternalServerError)
		return
	}

	rc.cacheIfCurrent(key, gen, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Save handles POST {type, data}.
func (rc *RecordController) Save(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rc.maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.Failure(models.MsgMissingFields))
		return
	}
	payload, err := models.ParseSaveRequest(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.Failure(models.MsgMissingFields))
		return
	}
	if !payload.HasRequiredFields() {
		writeJSON(w, http.StatusBadRequest, models.Failure(models.MsgMissingFields))
		return
	}

	kind, ok := models.KindFromJSON(payload.Type)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.Failure(models.MsgInvalidType))
		return
	}

	if err := rc.service.Save(kind, payload.Data); err != nil {
		rc.logger.Errorf(providers.TypePost, "Save %s failed: %s", kind, err)
		http.Error(w, models.MsgInternalServer, http.StatusInternalServerError)
		return
	}
	rc.invalidate(cacheKey(kind))

	writeJSON(w, http.StatusOK, models.Success(kind.SavedMessage(), nil))
}

// Load handles GET ?type=.
func (rc *RecordController) Load(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()["type"]
	if len(values) != 1 {
		writeJSON(w, http.StatusBadRequest, models.Failure(models.MsgInvalidType))
		return
	}
	kind, ok := models.ParseKind(values[0])
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.Failure(models.MsgInvalidType))
		return
	}

	rc.serveFromCacheOrCompute(w, r, cacheKey(kind), func() (*models.Response, error) {
		data, err := rc.service.Load(kind)
		if err != nil {
			return nil, err
		}
		return models.Success(kind.LoadedMessage(), data), nil
	})
}

func (rc *RecordController) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, models.Failure(models.MsgInvalidMethod))
}
