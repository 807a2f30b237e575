package state

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"aocbot/internal/models"
	"aocbot/internal/providers"
	"aocbot/internal/state/interfaces"

	json "github.com/goccy/go-json"
)

// CompressedSuffix marks baseline files stored zstd-compressed.
const CompressedSuffix = ".zst"

type FileManager struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		logger:     logger,
	}
}

// Load reads a baseline file. A missing file and a file that does not hold a
// valid baseline both yield nil, which callers treat as a first run.
func (f *FileManager) Load(fileName string) (*models.Baseline, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.logger.Infof(providers.TypeState, "No baseline at %s", fileName)
			return nil, nil
		}
		return nil, err
	}

	if isCompressed(fileName) {
		data, err = f.compressor.Decompress(data)
		if err != nil {
			f.logger.Warnf(providers.TypeState, "Baseline %s is not valid zstd, ignoring: %s", fileName, err)
			return nil, nil
		}
	}

	baseline, err := models.ParseBaseline(data)
	if err != nil {
		f.logger.Warnf(providers.TypeState, "Received invalid previous baseline from %s, ignoring: %s", fileName, err)
		return nil, nil
	}
	return baseline, nil
}

// Save writes the baseline through a temp file and rename, so readers never
// see a partial file. A nil baseline is stored as JSON null.
func (f *FileManager) Save(fileName string, baseline *models.Baseline) error {
	data, err := json.Marshal(baseline)
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	if isCompressed(fileName) {
		data, err = f.compressor.Compress(data)
		if err != nil {
			return fmt.Errorf("compress baseline: %w", err)
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
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

	if err = os.Rename(tmpFile, fileName); err != nil {
		os.Remove(tmpFile)
		return err
	}
	f.logger.Debugf(providers.TypeState, "Persisted baseline with %d member(s) to %s", baseline.Len(), fileName)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func isCompressed(fileName string) bool {
	return strings.HasSuffix(fileName, CompressedSuffix)
}
