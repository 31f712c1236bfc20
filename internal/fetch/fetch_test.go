package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func TestFetchDownloadsSupportedDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("document body"))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir(), 0)
	res, err := d.Fetch(context.Background(), srv.URL+"/policy.txt?sig=abc")
	require.NoError(t, err)
	defer res.Cleanup()

	assert.Equal(t, "txt", res.Ext)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "document body", string(data))
}

func TestFetchRejectsUnsupportedExtension(t *testing.T) {
	d := NewDownloader(t.TempDir(), 0)
	_, err := d.Fetch(context.Background(), "https://example.com/malware.exe")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestFetchRejectsNonHTTPURL(t *testing.T) {
	d := NewDownloader(t.TempDir(), 0)
	_, err := d.Fetch(context.Background(), "ftp://example.com/doc.pdf")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestFetchNon200IsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir(), 0)
	_, err := d.Fetch(context.Background(), srv.URL+"/missing.pdf")
	var ferr *domain.FetchError
	require.ErrorAs(t, err, &ferr)
}

func TestCleanupRemovesTempDir(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir(), 0)
	res, err := d.Fetch(context.Background(), srv.URL+"/note.txt")
	require.NoError(t, err)

	res.Cleanup()
	_, statErr := os.Stat(res.Dir)
	assert.True(t, os.IsNotExist(statErr))
}
