// Package store is wildebeest's StateStore: crash-safe serialization of
// entity records (Experiment, Run, Job) to per-entity YAML files.
//
// Separating each entity into its own file (rather than one database) means
// a Run is mutated concurrently only by its own supervising child, and an
// external status tool can read one run's file without locking the whole
// experiment.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

// Save marshals v as YAML and writes it to path atomically: the bytes are
// written to a sibling temp file, fsynced, then renamed over the
// destination. A reader (e.g. a status dashboard) that opens path therefore
// always observes either the old or the new complete contents, never a
// torn write.
func Save(v any, path string) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(path), ulid.Make().String()))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s -> %s: %w", tmp, path, err)
	}
	return nil
}

// Load reads path and decodes it into a freshly-allocated T.
func Load[T any](path string) (T, error) {
	var zero T
	b, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", path, err)
	}
	var v T
	if err := yaml.Unmarshal(b, &v); err != nil {
		return zero, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Rebaser is implemented by entities whose serialized form contains absolute
// paths that must be rewritten when the entity's enclosing root folder
// moves. Each entity rebases its own fields (there is no generic reflective
// path rewrite) because only the entity knows which fields are paths and
// which are opaque strings that merely look like one.
type Rebaser interface {
	// Rebase rewrites any stored path under oldRoot to the equivalent path
	// under newRoot. An entity with its own file persists itself if anything
	// changed; an embedded one leaves saving to its owner.
	Rebase(oldRoot, newRoot string) error
}
