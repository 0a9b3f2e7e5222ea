// Package workdir lays out the per-episode working directories.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
)

// Files kept in every working directory.
const (
	SelectionsFile = "selections.yaml"
	ScriptFile     = "script.md"
	EpisodeFile    = "episode.mp3"
	LogFile        = "curate.log"
)

// Dir resolves paths under a root directory.
type Dir struct {
	root string
}

// New returns a Dir rooted at root, or at DefaultRoot when root is empty.
func New(root string) (Dir, error) {
	if root != "" {
		return Dir{root: root}, nil
	}

	root, err := DefaultRoot()
	if err != nil {
		return Dir{}, err
	}

	return Dir{root: root}, nil
}

// DefaultRoot returns the base directory for all working files.
// The path is expanded at runtime to resolve to:
//
//	$HOME/Documents/Alkime/Podcasts
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Alkime", "Podcasts"), nil
}

func (d Dir) Root() string {
	return d.root
}

// WorkPath returns the full path for a working directory with the given name.
func (d Dir) WorkPath(workingName string) string {
	return filepath.Join(d.root, "work", workingName)
}

// FilePath returns the full path for a file in a working directory.
func (d Dir) FilePath(workingName, filename string) string {
	return filepath.Join(d.WorkPath(workingName), filename)
}

// Prep ensures that the working directory for the given name exists.
func (d Dir) Prep(workingName string) error {
	workPath := d.WorkPath(workingName)
	if err := os.MkdirAll(workPath, 0o755); err != nil {
		return fmt.Errorf("failed to create working directory %s: %w", workPath, err)
	}

	return nil
}

// WorkingName builds a directory-safe name from an explicit name, falling
// back to the date when the name slugs to nothing.
func WorkingName(name string, now time.Time) string {
	if s := slug.Make(name); s != "" {
		return s
	}

	return "episode-" + now.Format(time.DateOnly)
}
