package report

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// SizedFile is a file name with its size in bytes.
type SizedFile struct {
	Name string
	Size int64
}

// storageStats aggregates the on-disk footprint of a bundle.
type storageStats struct {
	Total int64
	Files []SizedFile
	Errs  []string
}

// collectStorage walks the bundle recording every file size. Walk errors
// are collected instead of aborting, so a partially readable bundle still
// yields a report.
func collectStorage(root string) *storageStats {
	stats := &storageStats{}

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			stats.Errs = append(stats.Errs, path+": "+err.Error())
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			stats.Errs = append(stats.Errs, path+": "+err.Error())
			return nil
		}
		stats.Total += info.Size()
		stats.Files = append(stats.Files, SizedFile{Name: d.Name(), Size: info.Size()})
		return nil
	})

	return stats
}

// Largest returns the n biggest files, ties broken by name.
func (s *storageStats) Largest(n int) []SizedFile {
	files := make([]SizedFile, len(s.Files))
	copy(files, s.Files)

	sort.Slice(files, func(i, j int) bool {
		if files[i].Size != files[j].Size {
			return files[i].Size > files[j].Size
		}
		return files[i].Name < files[j].Name
	})

	if len(files) > n {
		files = files[:n]
	}
	return files
}

// Extensions returns the footprint grouped by file extension, biggest
// group first.
func (s *storageStats) Extensions() []SizedFile {
	byExt := make(map[string]int64)
	for _, f := range s.Files {
		ext := filepath.Ext(f.Name)
		if ext == "" {
			ext = "(none)"
		}
		byExt[ext] += f.Size
	}

	groups := make([]SizedFile, 0, len(byExt))
	for ext, size := range byExt {
		groups = append(groups, SizedFile{Name: ext, Size: size})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Size != groups[j].Size {
			return groups[i].Size > groups[j].Size
		}
		return groups[i].Name < groups[j].Name
	})

	return groups
}
