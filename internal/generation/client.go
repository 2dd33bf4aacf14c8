package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/petitconteur/backend/internal/config"
	"github.com/petitconteur/backend/internal/safety"
)

const maxTokens = 1500

var (
	// ErrUnsafeInput means a raw user input field failed the safety filter.
	// No network call has been made.
	ErrUnsafeInput = errors.New("unsafe input rejected")

	// ErrUnsafeOutput means the generated text itself failed the safety
	// filter. It is a hard failure: the output is never sanitized or
	// silently regenerated.
	ErrUnsafeOutput = errors.New("generated content rejected")
)

// UnavailableError means the external call could not be completed at the
// transport level. It is transient; the end user may retry manually.
type UnavailableError struct {
	Hint string // advisory, human-readable guidance
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("generation service unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// RequestError means the service responded with a non-success status. The
// body is kept for diagnostics.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("generation request failed: %d - %s", e.StatusCode, e.Body)
}

// Transport failure signatures, matched against the lowercased error text.
// Anything else coming out of the HTTP client is passed through untouched.
var networkFailureSignatures = []string{
	"connection refused",
	"no such host",
	"connection reset",
	"host is unreachable",
	"network is unreachable",
	"timeout",
	"broken pipe",
	"eof",
}

// Client calls an Ollama-style /api/generate endpoint. Exactly one
// outbound call per Generate; retry policy belongs to the caller.
type Client struct {
	endpoint   string
	model      string
	filter     safety.Classifier
	httpClient *http.Client
}

func NewClient(cfg *config.Config, filter safety.Classifier) *Client {
	timeout := cfg.AITimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.OllamaURL, "/") + "/api/generate",
		model:      cfg.OllamaModel,
		filter:     filter,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Model returns the configured model name, for user-facing guidance.
func (c *Client) Model() string { return c.model }

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends the composed prompt to the generation endpoint. Each raw
// input is screened before any network call, in the order supplied,
// failing on the first violation; the generated text is screened again
// before being returned.
func (c *Client) Generate(ctx context.Context, prompt string, rawInputs []string) (string, error) {
	for _, input := range rawInputs {
		if !c.filter.IsAllowed(input) {
			return "", ErrUnsafeInput
		}
	}

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			NumPredict:  maxTokens,
			Temperature: 0.8,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		slog.Error("generation request failed", "status", resp.StatusCode, "body", string(raw))
		return "", &RequestError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}

	text := strings.TrimSpace(decoded.Response)
	if !c.filter.IsAllowed(text) {
		slog.Warn("generated text failed safety screening", "model", c.model)
		return "", ErrUnsafeOutput
	}
	return text, nil
}

// classifyTransportError maps transport failures onto UnavailableError
// with guidance when the signature makes the cause determinable.
// Cancellation counts as unavailable: the caller owns the deadline.
func (c *Client) classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &UnavailableError{Hint: c.genericHint(), Err: err}
	}

	msg := strings.ToLower(err.Error())
	for _, sig := range networkFailureSignatures {
		if strings.Contains(msg, sig) {
			return &UnavailableError{Hint: c.hintFor(sig), Err: err}
		}
	}
	return fmt.Errorf("generation call failed: %w", err)
}

func (c *Client) hintFor(signature string) string {
	switch signature {
	case "connection refused":
		return "Le service Ollama ne semble pas démarré. Lancez-le avec : ollama serve"
	case "no such host":
		return "Hôte Ollama introuvable. Vérifiez la variable OLLAMA_URL."
	default:
		return c.genericHint()
	}
}

func (c *Client) genericHint() string {
	return "Ollama injoignable ou modèle manquant. Démarrez Ollama puis : ollama pull " + c.model
}
