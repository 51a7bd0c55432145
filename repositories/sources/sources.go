package sources

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"status-tracker/models/constants"
)

func New(filePath string) *Impl {
	return &Impl{filePath: filePath}
}

// Load returns the product → feed URL mapping. The file is owned by the
// operator and re-read at the start of every poll cycle, so sources added or
// removed while the tracker runs take effect within one interval. A missing
// or corrupt file yields an empty mapping and an error log line, never a
// crash.
func (repo *Impl) Load() map[string]string {
	registry := map[string]string{}

	data, err := os.ReadFile(repo.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str(constants.LogFileName, repo.filePath).Msg("Failed to read sources file, no sources this cycle")
		}
		return registry
	}

	if errJSON := json.Unmarshal(data, &registry); errJSON != nil {
		log.Error().Err(errJSON).Str(constants.LogFileName, repo.filePath).Msg("Failed to decode sources file, no sources this cycle")
		return map[string]string{}
	}

	return registry
}
