// Package generator invokes the external image-compositing model that
// renders a garment onto a user photo.
package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Generator produces a composited try-on image for a user photo and a
// garment image.
type Generator interface {
	Generate(ctx context.Context, userPhotoURL, garmentImageURL, garmentName string) (string, error)
}

// DeliveryStrategy selects how input images reach the model. Remote
// fetch failures inside the provider are a known failure mode, so both
// strategies stay available.
type DeliveryStrategy string

const (
	// DeliveryURL passes the public image URLs through to the provider.
	DeliveryURL DeliveryStrategy = "url"
	// DeliveryInline prefetches both images and sends them as base64
	// data payloads.
	DeliveryInline DeliveryStrategy = "inline"
)

// compositingPrompt is the fixed instruction sent with every request.
const compositingPrompt = `Create a realistic fashion photo showing the person from the first image wearing the garment from the second image.
Preserve the person's face, pose, body proportions, and background from the first image.
Seamlessly blend the clothing item from the second image onto the person, ensuring proper fit, lighting, shadows, and fabric draping.
Maintain realistic lighting and a clean, editorial aesthetic similar to high-end fashion photography.
The result should look natural and professional, as if the person is actually wearing that garment.`

// Client calls an OpenAI-style chat-completions gateway with image
// modalities. Generation is slow (tens of seconds) and consumes paid
// quota, so the client never retries on its own; the controller offers
// the user an explicit retry instead.
type Client struct {
	httpClient *http.Client
	gatewayURL string
	apiKey     string
	model      string
	delivery   DeliveryStrategy
}

// NewClient builds a gateway client. A nil httpClient gets a default
// with a timeout generous enough for image generation.
func NewClient(gatewayURL, apiKey, model string, delivery DeliveryStrategy, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	if delivery == "" {
		delivery = DeliveryURL
	}
	return &Client{
		httpClient: httpClient,
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		model:      model,
		delivery:   delivery,
	}
}

// Generate validates and probes both image URLs, invokes the model and
// returns the generated image URL.
func (c *Client) Generate(ctx context.Context, userPhotoURL, garmentImageURL, garmentName string) (string, error) {
	if err := validateImageURL(userPhotoURL); err != nil {
		return "", fmt.Errorf("%w: user photo: %v", ErrInvalidInput, err)
	}
	if err := validateImageURL(garmentImageURL); err != nil {
		return "", fmt.Errorf("%w: garment image: %v", ErrInvalidInput, err)
	}

	if err := c.probeAssets(ctx, userPhotoURL, garmentImageURL); err != nil {
		return "", err
	}

	userImage, garmentImage := userPhotoURL, garmentImageURL
	if c.delivery == DeliveryInline {
		var err error
		if userImage, err = c.inlineImage(ctx, userPhotoURL); err != nil {
			return "", fmt.Errorf("%w: user photo: %v", ErrAssetNotAccessible, err)
		}
		if garmentImage, err = c.inlineImage(ctx, garmentImageURL); err != nil {
			return "", fmt.Errorf("%w: garment image: %v", ErrAssetNotAccessible, err)
		}
	}

	return c.invoke(ctx, userImage, garmentImage)
}

func validateImageURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// probeAssets issues HEAD requests against both URLs in parallel. The
// provider silently fails on private assets, so both must be public
// before the generation call is issued. First failure short-circuits.
func (c *Client) probeAssets(ctx context.Context, urls ...string) error {
	probeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(urls))
	for _, u := range urls {
		go func(u string) {
			errCh <- c.probe(probeCtx, u)
		}(u)
	}

	for range urls {
		if err := <-errCh; err != nil {
			cancel()
			return fmt.Errorf("%w: %v", ErrAssetNotAccessible, err)
		}
	}
	return nil
}

func (c *Client) probe(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HEAD %s returned %d", rawURL, resp.StatusCode)
	}
	return nil
}

// inlineImage fetches the image and re-encodes it as a data URL.
func (c *Client) inlineImage(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s returned %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Modalities []string      `json:"modalities"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Images  []struct {
				ImageURL imageRef `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) invoke(ctx context.Context, userImage, garmentImage string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: compositingPrompt},
				{Type: "image_url", ImageURL: &imageRef{URL: userImage}},
				{Type: "image_url", ImageURL: &imageRef{URL: garmentImage}},
			},
		}},
		Modalities: []string{"image", "text"},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", ErrGenerator, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerator, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerator, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrGenerator, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrQuotaExceeded
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		if msg := providerMessage(raw); msg != "" {
			return "", fmt.Errorf("%w: gateway returned %d: %s", ErrGenerator, resp.StatusCode, msg)
		}
		return "", fmt.Errorf("%w: gateway returned %d", ErrGenerator, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrGenerator, err)
	}

	if len(parsed.Choices) == 0 || len(parsed.Choices[0].Message.Images) == 0 ||
		parsed.Choices[0].Message.Images[0].ImageURL.URL == "" {
		return "", ErrNoResultProduced
	}

	return parsed.Choices[0].Message.Images[0].ImageURL.URL, nil
}

// providerMessage pulls a human-readable message out of an error body,
// which may be {"error":"..."} or {"error":{"message":"..."}}.
func providerMessage(raw []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Error) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Error, &s); err == nil {
		return s
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &obj); err == nil {
		return obj.Message
	}
	return ""
}
