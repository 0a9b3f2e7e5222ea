// Package store keeps YAML snapshots of flow state on disk so a flow can be
// resumed later.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alkime/podcurate/internal/wizard"
	"gopkg.in/yaml.v3"
)

const ext = ".yaml"

var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the on-disk form of a flow.
type Snapshot struct {
	SavedAt time.Time     `yaml:"saved_at"`
	State   *wizard.State `yaml:"state"`
}

// Store reads and writes snapshots in one directory.
type Store struct {
	dir string
	now func() time.Time
}

// Open prepares dir for snapshots.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+ext)
}

// Save writes state under name, replacing any earlier snapshot atomically.
func (s *Store) Save(name string, state *wizard.State) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid snapshot name %q", name)
	}

	data, err := yaml.Marshal(Snapshot{SavedAt: s.now().UTC(), State: state})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	slog.Debug("snapshot saved", "name", name, "step", state.CurrentStep)

	return nil
}

// Load reads the snapshot saved under name.
func (s *Store) Load(name string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", name, err)
	}

	if snap.State == nil {
		return nil, fmt.Errorf("snapshot %s has no state", name)
	}

	return &snap, nil
}

// List returns saved snapshot names in lexical order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	slices.Sort(names)

	return names, nil
}
