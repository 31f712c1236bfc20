package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"docqa/internal/domain"
)

var supportedTypes = map[string]bool{
	"pdf":  true,
	"docx": true,
	"txt":  true,
	"eml":  true,
}

// Downloader retrieves remote documents into per-request temp
// directories under a common root.
type Downloader struct {
	client  *http.Client
	tempDir string
}

// Result is one downloaded document. Cleanup removes its temp
// directory and is safe to call on a zero-value Result.
type Result struct {
	Path string
	Ext  string
	Dir  string
}

func (r *Result) Cleanup() {
	if r.Dir != "" {
		_ = os.RemoveAll(r.Dir)
	}
}

func NewDownloader(tempDir string, timeout time.Duration) *Downloader {
	if tempDir == "" {
		tempDir = "temp_files"
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Downloader{
		client:  &http.Client{Timeout: timeout},
		tempDir: tempDir,
	}
}

// Fetch validates the URL, checks the detected extension against the
// supported document types, and downloads the body to a temp file.
func (d *Downloader) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &domain.ValidationError{Msg: "document URL must be a valid HTTP/HTTPS URL"}
	}
	name := path.Base(u.Path)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if !supportedTypes[ext] {
		return nil, &domain.ValidationError{Msg: fmt.Sprintf("unsupported document type: %q", ext)}
	}

	if err := os.MkdirAll(d.tempDir, 0o755); err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	dir, err := os.MkdirTemp(d.tempDir, "doc-")
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	resp, err := d.client.Do(req)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_ = os.RemoveAll(dir)
		return nil, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	localPath := filepath.Join(dir, name)
	f, err := os.Create(localPath)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.RemoveAll(dir)
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.RemoveAll(dir)
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	return &Result{Path: localPath, Ext: ext, Dir: dir}, nil
}
