package imgur

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultUploadURL is Imgur's anonymous image upload endpoint.
const DefaultUploadURL = "https://api.imgur.com/3/image"

// Client uploads images to Imgur using their anonymous REST API.
type Client struct {
	ClientID  string
	UploadURL string
	HTTP      *http.Client
}

// New creates an Imgur client.
func New(clientID string) *Client {
	return &Client{
		ClientID:  clientID,
		UploadURL: DefaultUploadURL,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// uploadResponse is the subset of Imgur's response we read.
type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

// Upload sends raw image bytes to Imgur and returns the hosted image URL.
func (c *Client) Upload(ctx context.Context, image []byte) (string, error) {
	form := url.Values{}
	form.Set("image", base64.StdEncoding.EncodeToString(image))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("imgur: create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.ClientID)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("imgur: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("imgur: upload failed (%d): %s", resp.StatusCode, string(body))
	}

	var result uploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("imgur: decode response failed: %w", err)
	}
	if !result.Success || result.Data.Link == "" {
		return "", fmt.Errorf("imgur: upload rejected: %s", string(body))
	}
	return result.Data.Link, nil
}
