package netx

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDownloadToFile(t *testing.T) {
	file := []byte("code_str,fullname_passport\n")

	t.Run("success 200 OK", func(t *testing.T) {
		var gotMethod string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			_, _ = w.Write(file)
		}))
		defer ts.Close()

		dst := filepath.Join(t.TempDir(), "clients.csv")
		if err := DownloadToFile(context.Background(), ts.Client(), ts.URL+"/file/bot123/documents/file_1.csv", dst); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodGet {
			t.Fatalf("method = %q, want GET", gotMethod)
		}
		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatalf("read dst: %v", err)
		}
		if !bytes.Equal(got, file) {
			t.Fatalf("content = %q, want %q", string(got), string(file))
		}
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("file is too big"))
		}))
		defer ts.Close()

		dst := filepath.Join(t.TempDir(), "clients.csv")
		err := DownloadToFile(context.Background(), ts.Client(), ts.URL, dst)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "file is too big") {
			t.Fatalf("error = %v, want status and body", err)
		}
		if _, err := os.Stat(dst); !os.IsNotExist(err) {
			t.Fatalf("dst should not exist, stat err = %v", err)
		}
	})

	t.Run("cancelled context -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(file)
		}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := DownloadToFile(ctx, ts.Client(), ts.URL, filepath.Join(t.TempDir(), "x")); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
