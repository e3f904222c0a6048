// Package store manages the directory of installed model bundles. Bundles
// live side by side under a single root (by default ~/.spacy-inspect/models),
// one directory per model version, each carrying its own meta.json.
package store

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/lfaller/inspect-spacy-model/internal/pipeline"
)

// ErrNotInstalled reports that no installed bundle matches the requested
// model name.
var ErrNotInstalled = errors.New("model not installed")

const downloadingDir = ".downloading"

// InstalledModel represents one model version found under the store root
type InstalledModel struct {
	Name     string // installable name, e.g. en_core_web_sm
	Version  string
	Lang     string
	Pipeline []string
	Path     string // bundle directory
}

// Store manages installed bundles under a root directory
type Store struct {
	Root string
}

// NewStore opens the bundle store, creating the root and its download
// staging area when missing
func NewStore(root string) (*Store, error) {
	// Expand home directory
	if len(root) > 0 && root[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		root = filepath.Join(home, root[1:])
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create models directory: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(root, downloadingDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	return &Store{Root: root}, nil
}

// List returns the installed models, sorted by name and then by version
// (newest first). Directories without a readable meta.json are not models
// and are skipped.
func (s *Store) List() ([]InstalledModel, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to read models directory: %w", err)
	}

	var models []InstalledModel
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		dir := filepath.Join(s.Root, entry.Name())
		meta, err := pipeline.ParseMeta(filepath.Join(dir, pipeline.MetaFileName))
		if err != nil {
			continue
		}

		models = append(models, InstalledModel{
			Name:     meta.FullName(),
			Version:  meta.Version,
			Lang:     meta.Lang,
			Pipeline: meta.Pipeline,
			Path:     dir,
		})
	}

	sort.Slice(models, func(i, j int) bool {
		if models[i].Name != models[j].Name {
			return models[i].Name < models[j].Name
		}
		return CompareVersions(models[i].Version, models[j].Version) > 0
	})

	return models, nil
}

// Resolve returns the bundle directory for a model name. When several
// versions are installed the newest wins. A missing model is reported
// with ErrNotInstalled.
func (s *Store) Resolve(name string) (string, error) {
	models, err := s.List()
	if err != nil {
		return "", err
	}

	for _, model := range models {
		// List sorts newest first within a name.
		if model.Name == name {
			return model.Path, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotInstalled, name)
}

// Has checks if a model is installed
func (s *Store) Has(name string) bool {
	_, err := s.Resolve(name)
	return err == nil
}

// Remove deletes every installed version of a model
func (s *Store) Remove(name string) error {
	models, err := s.List()
	if err != nil {
		return err
	}

	removed := false
	for _, model := range models {
		if model.Name != name {
			continue
		}
		if err := os.RemoveAll(model.Path); err != nil {
			return fmt.Errorf("failed to delete %s: %w", model.Path, err)
		}
		removed = true
	}

	if !removed {
		return fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}
	return nil
}

// Install extracts a bundle archive into the store and returns the bundle
// directory. The archive must contain a single top-level directory with a
// meta.json at its root; an installed bundle of the same name is replaced.
func (s *Store) Install(archivePath string) (string, error) {
	stage, err := os.MkdirTemp(filepath.Join(s.Root, downloadingDir), "extract-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stage)

	if err := extractTarGz(archivePath, stage); err != nil {
		return "", fmt.Errorf("failed to extract archive: %w", err)
	}

	entries, err := os.ReadDir(stage)
	if err != nil {
		return "", fmt.Errorf("failed to read staging directory: %w", err)
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return "", fmt.Errorf("archive must contain a single bundle directory")
	}

	bundle := entries[0].Name()
	staged := filepath.Join(stage, bundle)
	if _, err := pipeline.ParseMeta(filepath.Join(staged, pipeline.MetaFileName)); err != nil {
		return "", fmt.Errorf("archive is not a model bundle: %w", err)
	}

	dest := filepath.Join(s.Root, bundle)
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", dest, err)
	}
	if err := os.Rename(staged, dest); err != nil {
		return "", fmt.Errorf("failed to move bundle into place: %w", err)
	}

	return dest, nil
}

// DownloadPath returns the staging path for an archive download
func (s *Store) DownloadPath(filename string) string {
	return filepath.Join(s.Root, downloadingDir, filename+".part")
}

// DirSize returns the total size in bytes of the regular files below dir
func DirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	return total, err
}

// extractTarGz unpacks a .tar.gz archive below dest, refusing entries
// that would escape it.
func extractTarGz(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		target, err := securePath(dest, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			out.Close()
		default:
			// Symlinks and the rest have no place in a model bundle.
		}
	}

	return nil
}

func securePath(dest, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("archive entry %q has an absolute path", name)
	}
	target := filepath.Join(dest, name)
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes the target directory", name)
	}
	return target, nil
}

// CompareVersions orders bundle versions, preferring semantic comparison
// and falling back to a plain string compare for versions semver cannot
// parse.
func CompareVersions(a, b string) int {
	va, vb := "v"+a, "v"+b
	if semver.IsValid(va) && semver.IsValid(vb) {
		return semver.Compare(va, vb)
	}
	return strings.Compare(a, b)
}

// ComputeSHA256 computes the SHA256 checksum of a file
func ComputeSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
