// Package backup copies the task database to timestamped files and keeps
// only the most recent ones.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

const (
	DefaultKeep = 3
	// timestampLayout sorts lexicographically in chronological order.
	timestampLayout = "20060102_150405"
	defaultExt      = ".db"
)

var (
	ErrUnsupported = errors.New("backups are not supported by the configured store")
	ErrInvalidName = errors.New("invalid backup name")
	ErrNotFound    = errors.New("backup not found")
)

var namePattern = regexp.MustCompile(`^backup_\d{8}_\d{6}\.[A-Za-z0-9]+$`)

type Rotator struct {
	source string
	dir    string
	keep   int
	now    func() time.Time
}

// NewRotator backs up the file at source into dir. An empty source yields a
// rotator that can list existing backups but refuses to create new ones.
func NewRotator(source, dir string, keep int) *Rotator {
	if keep < 1 {
		keep = DefaultKeep
	}
	return &Rotator{
		source: source,
		dir:    dir,
		keep:   keep,
		now:    time.Now,
	}
}

func (r *Rotator) Dir() string {
	return r.dir
}

// Create copies the source file into the backup directory and prunes old
// backups. It returns the name of the new backup and the names removed.
func (r *Rotator) Create(ctx context.Context) (string, []string, error) {
	if r.source == "" {
		return "", nil, ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create backup dir: %w", err)
	}

	ext := filepath.Ext(r.source)
	if ext == "" {
		ext = defaultExt
	}
	name := "backup_" + r.now().Format(timestampLayout) + ext

	if err := copyFile(r.source, filepath.Join(r.dir, name)); err != nil {
		return "", nil, fmt.Errorf("copy %s: %w", r.source, err)
	}

	removed, err := r.Prune(r.keep)
	return name, removed, err
}

// Prune deletes the oldest backups until at most keep remain.
func (r *Rotator) Prune(keep int) ([]string, error) {
	names, err := r.names()
	if err != nil {
		return nil, err
	}

	var removed []string
	for len(names) > keep {
		if err := os.Remove(filepath.Join(r.dir, names[0])); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", names[0], err)
		}
		removed = append(removed, names[0])
		names = names[1:]
	}
	return removed, nil
}

// List returns backup names, newest first.
func (r *Rotator) List() ([]string, error) {
	names, err := r.names()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names, nil
}

// Path resolves a backup name to its file, refusing anything that is not a
// backup file inside the backup directory.
func (r *Rotator) Path(name string) (string, error) {
	if !namePattern.MatchString(name) {
		return "", ErrInvalidName
	}
	path := filepath.Join(r.dir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return path, nil
}

// names returns backup names in ascending (chronological) order.
func (r *Rotator) names() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && namePattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// copyFile writes through a temporary file so a failed copy never leaves a
// truncated backup behind. The source modification time is preserved.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".backup-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Chtimes(tmp.Name(), info.ModTime(), info.ModTime()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
