package controllers

import (
	"errors"
	"io"
	"net/http"

	"aocbot/internal/models"
	"aocbot/internal/providers"
	"aocbot/internal/services"
	"aocbot/internal/state"
	"aocbot/internal/structures"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	conf        *structures.Config
	logger      providers.Logger
	service     services.BoardServiceInterface
	fileManager *state.FileManager
}

func NewApiController(conf *structures.Config, logger providers.Logger, service services.BoardServiceInterface, fileManager *state.FileManager) *ApiController {
	return &ApiController{
		conf:        conf,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
	}
}

// Invoke is the scheduler trigger: the body carries the previous baseline
// and the response carries the next one for the caller to store.
func (ac *ApiController) Invoke(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	previous, err := models.ParseBaseline(body)
	if err != nil {
		ac.logger.Warnf(providers.TypeHttp, "Received invalid previous baseline, initializing: %s", err)
		previous = nil
	}

	next, err := ac.service.Invoke(r.Context(), previous)
	if err != nil {
		ac.logger.Errorf(providers.TypeHttp, "Invocation failed: %s", err)
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrNotify) {
			status = http.StatusBadGateway
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, next)
}

// State serves the baseline persisted by scheduled runs.
func (ac *ApiController) State(w http.ResponseWriter, r *http.Request) {
	baseline, err := ac.fileManager.Load(ac.conf.Persistence.FilePath)
	if err != nil {
		ac.logger.Errorf(providers.TypeHttp, "Load baseline: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, baseline)
}

func writeJSON(w http.ResponseWriter, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
