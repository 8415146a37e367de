package imgur

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUpload(t *testing.T) {
	image := []byte{0x89, 0x50, 0x4e, 0x47}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-id" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error = %v", err)
		}
		if got := r.PostFormValue("image"); got != base64.StdEncoding.EncodeToString(image) {
			t.Errorf("image form value = %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{"link":"https://i.imgur.com/abc123.png"}}`))
	}))
	defer srv.Close()

	c := New("test-id")
	c.UploadURL = srv.URL

	link, err := c.Upload(context.Background(), image)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if link != "https://i.imgur.com/abc123.png" {
		t.Errorf("link = %q", link)
	}
}

func TestUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"data":{}}`))
	}))
	defer srv.Close()

	c := New("test-id")
	c.UploadURL = srv.URL

	if _, err := c.Upload(context.Background(), []byte("x")); err == nil {
		t.Error("Upload() accepted a rejected upload")
	}
}

func TestUploadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New("test-id")
	c.UploadURL = srv.URL

	if _, err := c.Upload(context.Background(), []byte("x")); err == nil {
		t.Error("Upload() ignored a non-2xx status")
	}
}
