package imagehost

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *CloudinaryClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewCloudinaryClient("demo-cloud", "key123", "secret456", "cms")
	client.SetBaseURL(srv.URL)
	return client
}

func TestUploadSendsSignedMultipartRequest(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "key123", r.FormValue("api_key"))
		assert.Equal(t, "cms", r.FormValue("folder"))
		timestamp := r.FormValue("timestamp")
		assert.NotEmpty(t, timestamp)

		// The signature covers folder and timestamp sorted by key, with
		// the secret appended.
		toSign := fmt.Sprintf("folder=cms&timestamp=%s%s", timestamp, "secret456")
		sum := sha1.Sum([]byte(toSign))
		assert.Equal(t, hex.EncodeToString(sum[:]), r.FormValue("signature"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "logo.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"secure_url":"https://res.example.com/cms/logo.png","public_id":"cms/logo"}`)
	})

	result, err := client.Upload(context.Background(), "logo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/demo-cloud/image/upload", gotPath)
	assert.Equal(t, "https://res.example.com/cms/logo.png", result.URL)
	assert.Equal(t, "cms/logo", result.PublicID)
}

func TestUploadWithoutFolderOmitsField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hasFolder := r.MultipartForm.Value["folder"]
		assert.False(t, hasFolder)

		toSign := "timestamp=" + r.FormValue("timestamp") + "secret456"
		sum := sha1.Sum([]byte(toSign))
		assert.Equal(t, hex.EncodeToString(sum[:]), r.FormValue("signature"))

		fmt.Fprint(w, `{"secure_url":"https://res.example.com/x.jpg","public_id":"x"}`)
	})
	client.Folder = ""

	_, err := client.Upload(context.Background(), "x.jpg", strings.NewReader("jpg"))
	require.NoError(t, err)
}

func TestUploadErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid signature"}}`, http.StatusUnauthorized)
	})

	_, err := client.Upload(context.Background(), "x.jpg", strings.NewReader("jpg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid signature")
}

func TestUploadRequiresCredentials(t *testing.T) {
	client := NewCloudinaryClient("", "", "", "")
	assert.False(t, client.Configured())

	_, err := client.Upload(context.Background(), "x.jpg", strings.NewReader("jpg"))
	assert.Error(t, err)

	assert.True(t, NewCloudinaryClient("c", "k", "s", "").Configured())
}
