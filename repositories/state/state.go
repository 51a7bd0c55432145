package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"status-tracker/models/constants"
)

func New(filePath string) *Impl {
	return &Impl{filePath: filePath}
}

// Load returns the persisted product → last-seen-entry-id mapping. A missing
// or unreadable file yields an empty mapping; the tracker then re-detects
// every feed's newest entry as a change, which is the accepted at-least-once
// behavior.
func (repo *Impl) Load() map[string]string {
	record := map[string]string{}

	data, err := os.ReadFile(repo.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str(constants.LogFileName, repo.filePath).Msg("Failed to read state file, starting from empty state")
		}
		return record
	}

	if errJSON := json.Unmarshal(data, &record); errJSON != nil {
		log.Error().Err(errJSON).Str(constants.LogFileName, repo.filePath).Msg("Failed to decode state file, starting from empty state")
		return map[string]string{}
	}

	return record
}

// Save rewrites the full mapping. The write goes to a temporary file in the
// same directory first and is moved into place with a rename, so a crash
// mid-write never leaves a half-written state file behind.
func (repo *Impl) Save(record map[string]string) error {
	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(repo.filePath), filepath.Base(repo.filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary state file: %w", err)
	}

	if _, errWrite := tmp.Write(data); errWrite != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state: %w", errWrite)
	}
	if errClose := tmp.Close(); errClose != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temporary state file: %w", errClose)
	}

	if errRename := os.Rename(tmp.Name(), repo.filePath); errRename != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", errRename)
	}

	return nil
}
