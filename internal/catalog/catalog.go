// Package catalog lists the playable audio clips. The coordinator
// only consults it to validate a game start; clips are served to
// clients as plain static files.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/rs/zerolog/log"
)

var audioExts = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
	".m4a": true,
	".aac": true,
}

// FolderCatalog reads tracks from a local songs folder. The display
// name is the file stem with dashes and underscores spaced out.
type FolderCatalog struct {
	dir string
}

func NewFolderCatalog(dir string) (*FolderCatalog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create songs folder: %w", err)
	}
	return &FolderCatalog{dir: dir}, nil
}

func (c *FolderCatalog) Dir() string { return c.dir }

func (c *FolderCatalog) Tracks() ([]domain.Track, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("read songs folder: %w", err)
	}
	tracks := make([]domain.Track, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !audioExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		tracks = append(tracks, domain.Track{
			ID:   len(tracks),
			Name: displayName(name),
			Path: "/songs/" + name,
		})
	}
	log.Debug().Str("module", "catalog").Int("tracks", len(tracks)).Msg("listed tracks")
	return tracks, nil
}

func displayName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = strings.ReplaceAll(stem, "-", " ")
	return strings.ReplaceAll(stem, "_", " ")
}
