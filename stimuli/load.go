// SPDX-License-Identifier: MIT
// Package: crt/stimuli
//
// load.go - image discovery.

package stimuli

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
)

// ErrNotDirectory indicates a stimulus path that is not a directory.
var ErrNotDirectory = errors.New("stimuli: not a directory")

// ErrInvalidName indicates an image name the session wire format cannot carry.
var ErrInvalidName = errors.New("stimuli: invalid image name")

// ErrEmptyPool indicates a filler directory holding no images.
var ErrEmptyPool = errors.New("stimuli: no images")

// wireSep separates fields in the logged imseq string, so no image name
// may contain it.
const wireSep = ","

// CheckName rejects names that would split into two imseq fields.
func CheckName(name string) error {
	if strings.Contains(name, wireSep) {
		return fmt.Errorf("%q contains %q: %w", name, wireSep, ErrInvalidName)
	}

	return nil
}

// imageExtensions are matched case-insensitively.
var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// IsImage reports whether name carries a supported image extension.
func IsImage(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]

	return ok
}

// LoadDir returns the images directly inside dir, sorted by file name.
// Item.ID is the file name and Item.Path joins dir and the name with forward
// slashes, as the runtime expects URLs. Subdirectories are not descended.
// An empty directory yields an empty list, not an error.
//
// Errors: ErrNotDirectory, ErrInvalidName for an image whose name contains a
// comma.
func LoadDir(dir string) ([]sequence.Item, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadDir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("LoadDir: %s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir) // sorted by name
	if err != nil {
		return nil, fmt.Errorf("LoadDir: %w", err)
	}

	base := filepath.ToSlash(dir)
	items := make([]sequence.Item, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		if err = CheckName(e.Name()); err != nil {
			return nil, fmt.Errorf("LoadDir: %w", err)
		}
		items = append(items, sequence.Item{ID: e.Name(), Path: path.Join(base, e.Name())})
	}

	return items, nil
}

// LoadPools loads the target pool and, when fillerDir is non-empty, a
// separate filler pool. Without a filler directory the returned pools are
// shared (see sequence.Pools.Shared). A filler directory without images is
// ErrEmptyPool rather than a silent fallback to sharing.
func LoadPools(targetDir, fillerDir string) (sequence.Pools, error) {
	targets, err := LoadDir(targetDir)
	if err != nil {
		return sequence.Pools{}, err
	}
	if fillerDir == "" {
		return sequence.Pools{Targets: targets}, nil
	}
	fillers, err := LoadDir(fillerDir)
	if err != nil {
		return sequence.Pools{}, err
	}
	if len(fillers) == 0 {
		return sequence.Pools{}, fmt.Errorf("LoadPools: filler directory %s: %w", fillerDir, ErrEmptyPool)
	}

	return sequence.Pools{Targets: targets, Fillers: fillers}, nil
}
