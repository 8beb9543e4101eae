package imagehost

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Uploader pushes image bytes to an external image host and returns the
// hosted URL. The host itself is an opaque third-party service.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error)
}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// CloudinaryClient implements Uploader against Cloudinary's signed
// upload REST endpoint.
type CloudinaryClient struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string

	httpClient *http.Client
	baseURL    string
}

func NewCloudinaryClient(cloudName, apiKey, apiSecret, folder string) *CloudinaryClient {
	return &CloudinaryClient{
		CloudName:  cloudName,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		Folder:     folder,
		httpClient: &http.Client{Timeout: 25 * time.Second},
		baseURL:    "https://api.cloudinary.com/v1_1",
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *CloudinaryClient) SetBaseURL(u string) { c.baseURL = u }

func (c *CloudinaryClient) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

func (c *CloudinaryClient) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("image host credentials not configured")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"timestamp": timestamp,
	}
	if c.Folder != "" {
		params["folder"] = c.Folder
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range params {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.WriteField("api_key", c.APIKey); err != nil {
		return nil, fmt.Errorf("write api_key: %w", err)
	}
	if err := mw.WriteField("signature", c.sign(params)); err != nil {
		return nil, fmt.Errorf("write signature: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("image host returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var uploaded struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &UploadResult{URL: uploaded.SecureURL, PublicID: uploaded.PublicID}, nil
}

// sign produces Cloudinary's request signature: SHA-1 over the
// alphabetically sorted params joined as key=value pairs, with the API
// secret appended.
func (c *CloudinaryClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	toSign := strings.Join(pairs, "&") + c.APISecret
	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}
