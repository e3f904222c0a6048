package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/lfaller/inspect-spacy-model/internal/logging"
	"github.com/lfaller/inspect-spacy-model/internal/registry"
)

// ProgressFunc is called during download to report progress
type ProgressFunc func(downloaded, total int64, speed float64)

// Downloader fetches bundle archives from Hugging Face and installs them
type Downloader struct {
	Store        *Store
	Client       *http.Client
	ProgressFunc ProgressFunc
}

// NewDownloader creates a new downloader
func NewDownloader(st *Store) *Downloader {
	return &Downloader{
		Store: st,
		Client: &http.Client{
			Timeout: 0, // No timeout for large downloads
		},
		ProgressFunc: nil,
	}
}

// Download fetches a model by its catalog name and installs it, returning
// the bundle directory. A model that is already installed is left alone.
func (d *Downloader) Download(ctx context.Context, name string) (string, error) {
	model, err := registry.GetModelByName(name)
	if err != nil {
		return "", err
	}

	if dir, err := d.Store.Resolve(name); err == nil {
		logging.Infof("Model %s already installed at %s", name, dir)
		return dir, nil
	}

	url := BuildBundleURL(model)
	archive, err := d.Fetch(ctx, url, model.Filename)
	if err != nil {
		return "", err
	}
	defer os.Remove(archive)

	if model.SHA256 != "" {
		computed, err := ComputeSHA256(archive)
		if err != nil {
			return "", fmt.Errorf("failed to compute checksum: %w", err)
		}
		if computed != model.SHA256 {
			return "", fmt.Errorf("checksum mismatch: expected %s, got %s", model.SHA256, computed)
		}
	}

	return d.Store.Install(archive)
}

// Fetch downloads url into the staging area and returns the archive path.
// A partial file from an interrupted download is resumed with a range
// request.
func (d *Downloader) Fetch(ctx context.Context, url, filename string) (string, error) {
	tempPath := d.Store.DownloadPath(filename)

	// Check for partial download
	var offset int64
	if info, err := os.Stat(tempPath); err == nil {
		offset = info.Size()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}
	if offset > 0 && resp.StatusCode == http.StatusOK {
		// Server ignored the range request, start over.
		offset = 0
	}

	totalSize := resp.ContentLength
	if offset > 0 && resp.StatusCode == http.StatusPartialContent {
		totalSize += offset
	}

	flag := os.O_CREATE | os.O_WRONLY
	if offset > 0 {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}

	file, err := os.OpenFile(tempPath, flag, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open temp file: %w", err)
	}
	defer file.Close()

	if err := d.copyWithProgress(resp.Body, file, offset, totalSize); err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	return tempPath, nil
}

// copyWithProgress copies with progress reporting
func (d *Downloader) copyWithProgress(src io.Reader, dst io.Writer, offset, total int64) error {
	buf := make([]byte, 32*1024) // 32KB buffer
	downloaded := offset
	startTime := time.Now()
	lastUpdate := time.Now()

	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)

			// Report progress every 500ms
			if d.ProgressFunc != nil && time.Since(lastUpdate) > 500*time.Millisecond {
				elapsed := time.Since(startTime).Seconds()
				speed := float64(downloaded-offset) / elapsed // bytes per second
				d.ProgressFunc(downloaded, total, speed)
				lastUpdate = time.Now()
			}
		}

		if err == io.EOF {
			// Final progress update
			if d.ProgressFunc != nil {
				elapsed := time.Since(startTime).Seconds()
				speed := float64(downloaded-offset) / elapsed
				d.ProgressFunc(downloaded, total, speed)
			}
			break
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// BuildBundleURL builds the download URL for a bundle archive
func BuildBundleURL(model *registry.ModelInfo) string {
	return fmt.Sprintf("https://huggingface.co/%s/resolve/main/%s",
		model.BundleRepo,
		model.Filename)
}

// CleanupFailedDownloads removes staging leftovers older than 24 hours
func (d *Downloader) CleanupFailedDownloads() error {
	downloadDir := filepath.Join(d.Store.Root, downloadingDir)

	entries, err := os.ReadDir(downloadDir)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-24 * time.Hour)

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			path := filepath.Join(downloadDir, entry.Name())
			os.RemoveAll(path)
		}
	}

	return nil
}
