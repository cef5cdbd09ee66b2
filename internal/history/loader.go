package history

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const workDirPrefix = "spotify-history-"

// Cache holds the normalized dataset of at most one archive, keyed by the
// archive's digest.
type Cache interface {
	Lookup(digest string) ([]Play, bool, error)

	// Replace evicts whatever is cached and stores plays under digest.
	Replace(digest string, plays []Play) error
}

type LoaderConfig struct {
	// Parent of the per-load working directory. Empty means the OS temp dir.
	WorkDir string

	// Plays of this many milliseconds or less are dropped. Zero means
	// DefaultMinPlayMs.
	MinPlayMs int64
}

// Loader turns a streaming history archive into a normalized dataset.
type Loader struct {
	fs     afero.Fs
	cache  Cache
	config LoaderConfig
	logger *zap.Logger
}

// NewLoader returns a Loader that extracts archives onto fs. cache may be nil,
// in which case every Load runs the whole pipeline.
func NewLoader(fs afero.Fs, cache Cache, config LoaderConfig, logger *zap.Logger) *Loader {
	if config.MinPlayMs == 0 {
		config.MinPlayMs = DefaultMinPlayMs
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fs:     fs,
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// Digest returns the cache key of an archive.
func Digest(archive []byte) string {
	sum := sha256.Sum256(archive)
	return hex.EncodeToString(sum[:])
}

// Load returns the normalized plays of archive, reusing the cached dataset
// when the same bytes were loaded last.
func (l *Loader) Load(ctx context.Context, archive []byte) ([]Play, error) {
	digest := Digest(archive)
	log := l.logger.With(zap.String("digest", digest[:12]))

	if l.cache != nil {
		plays, ok, err := l.cache.Lookup(digest)
		if err != nil {
			return nil, fmt.Errorf("looking up cached dataset: %w", err)
		}
		if ok {
			log.Debug("dataset cache hit", zap.Int("plays", len(plays)))
			return plays, nil
		}
		log.Debug("dataset cache miss")
	}

	plays, err := l.load(ctx, archive, log)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Replace(digest, plays); err != nil {
			return nil, fmt.Errorf("caching dataset: %w", err)
		}
	}
	return plays, nil
}

func (l *Loader) load(ctx context.Context, archive []byte, log *zap.Logger) ([]Play, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	dir, err := afero.TempDir(l.fs, l.config.WorkDir, workDirPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSetup, err)
	}
	defer func() {
		if err := l.fs.RemoveAll(dir); err != nil {
			log.Warn("removing working directory", zap.String("dir", dir), zap.Error(err))
		}
	}()

	if err := l.extract(ctx, zr, dir); err != nil {
		return nil, err
	}
	if err := l.flatten(dir); err != nil {
		return nil, err
	}

	records, files, err := parseDir(ctx, l.fs, dir)
	if err != nil {
		return nil, err
	}

	plays, err := Normalize(records, l.config.MinPlayMs)
	if err != nil {
		return nil, err
	}

	log.Debug("loaded archive",
		zap.Int("files", files),
		zap.Int("records", len(records)),
		zap.Int("dropped", len(records)-len(plays)))
	return plays, nil
}

func (l *Loader) extract(ctx context.Context, zr *zip.Reader, dir string) error {
	root := filepath.Clean(dir) + string(os.PathSeparator)
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target := filepath.Join(dir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target+string(os.PathSeparator), root) {
			return fmt.Errorf("%w: entry %q escapes the archive root", ErrInvalidArchive, f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := l.fs.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("%w: %v", ErrSetup, err)
			}
			continue
		}

		if err := l.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrSetup, err)
		}
		if err := l.extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrInvalidArchive, f.Name, err)
	}
	defer rc.Close()

	out, err := l.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetup, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrInvalidArchive, f.Name, err)
	}
	return nil
}

// flatten moves the entries of every immediate subdirectory of dir up one
// level and removes the emptied subdirectory. Deeper levels are left as they
// are.
func (l *Loader) flatten(dir string) error {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetup, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		children, err := afero.ReadDir(l.fs, sub)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSetup, err)
		}
		for _, child := range children {
			if err := l.fs.Rename(filepath.Join(sub, child.Name()), filepath.Join(dir, child.Name())); err != nil {
				return fmt.Errorf("%w: moving %s: %v", ErrSetup, child.Name(), err)
			}
		}
		if err := l.fs.Remove(sub); err != nil {
			return fmt.Errorf("%w: removing %s: %v", ErrSetup, sub, err)
		}
	}
	return nil
}
