package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"aula/config"
	"aula/shared/failure"
)

const (
	generateContentPath = "/v1beta/models/%s:generateContent"
	apiKeyHeader        = "x-goog-api-key"

	requestTimeout = 60 * time.Second
)

// InlineDocument is a binary attachment sent alongside a prompt.
type InlineDocument struct {
	MIMEType string
	Data     []byte
}

// Client is a thin wrapper over the Gemini generateContent REST endpoint.
// Both oracles (timetable extraction and intent interpretation) go through
// it; rate-limit responses are retried with bounded exponential backoff and
// then surfaced as a QuotaExceeded failure.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string, doc *InlineDocument, out any) error
}

type clientImpl struct {
	cfg  *config.Config
	http *http.Client
}

func New(cfg *config.Config) Client {
	return &clientImpl{
		cfg: cfg,
		http: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type generatePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *inlineDataPart `json:"inline_data,omitempty"`
}

type inlineDataPart struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []struct {
		Parts []generatePart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMIMEType string  `json:"response_mime_type"`
		Temperature      float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateJSON sends the prompt (plus optional inline document) and decodes
// the model's JSON answer into out.
func (c *clientImpl) GenerateJSON(ctx context.Context, prompt string, doc *InlineDocument, out any) error {
	parts := []generatePart{{Text: prompt}}
	if doc != nil {
		parts = append(parts, generatePart{
			InlineData: &inlineDataPart{
				MIMEType: doc.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(doc.Data),
			},
		})
	}

	body := generateRequest{}
	body.Contents = append(body.Contents, struct {
		Parts []generatePart `json:"parts"`
	}{Parts: parts})
	body.GenerationConfig.ResponseMIMEType = "application/json"
	body.GenerationConfig.Temperature = 0.1

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal oracle request: %w", err)
	}

	url := c.cfg.External.Gemini.BaseURL + fmt.Sprintf(generateContentPath, c.cfg.External.Gemini.Model)

	var text string

	operation := func() error {
		text, err = c.generateOnce(ctx, url, payload)

		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.cfg.External.Gemini.MaxRetries)),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		return err
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		return fmt.Errorf("oracle returned no usable JSON: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode oracle response: %w", err)
	}

	return nil
}

func (c *clientImpl) generateOnce(ctx context.Context, url string, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to build oracle request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.cfg.External.Gemini.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("oracle request failed: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to read oracle response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		log.Warn().Int("status", resp.StatusCode).Msg("oracle quota hit, retrying with backoff")

		return "", failure.QuotaExceeded("oracle quota exhausted, try again later") //nolint:wrapcheck
	}

	if resp.StatusCode != http.StatusOK {
		return "", backoff.Permanent(fmt.Errorf("oracle returned status %d: %s", resp.StatusCode, string(raw)))
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to decode oracle envelope: %w", err))
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", backoff.Permanent(fmt.Errorf("oracle returned no candidates"))
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// extractJSONObject pulls the first JSON object out of the model's answer,
// tolerating markdown fences and surrounding prose.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.Trim(text, "`")
		text = strings.TrimSpace(strings.TrimPrefix(text, "json"))
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in oracle output")
	}

	return text[start : end+1], nil
}
