// Client struct, canonical option types, and HTTP orchestration for the
// generation service. Provider-specific logic lives in adapter.go.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"DebateRehearsal/pkg/logger"
	"DebateRehearsal/pkg/utils"

	"github.com/teilomillet/gollm"
)

// Options carries per-call generation parameters. Nil pointer fields leave
// the provider default in place. ContextWindow and RepeatPenalty are only
// honoured by providers that accept them (Ollama).
type Options struct {
	Temperature   *float64
	MaxTokens     *int
	ContextWindow int
	RepeatPenalty float64
}

// Client handles communication with the generation service. Provider
// detection is shared with gollm (via mapProviderName); request building and
// response parsing go through the adapter layer.
type Client struct {
	baseURL      string
	apiKey       string
	model        string
	providerName string    // canonical provider name (e.g. "openai", "ollama")
	gollmLLM     gollm.LLM // optional gollm instance for warmup/simple calls
	cache        *promptCache
	retryConfig  utils.RetryConfig
	httpClient   *http.Client
}

// NewClient creates a generation client with auto-detected provider.
func NewClient(baseURL, apiKey, model string) *Client {
	return NewClientWithProvider(baseURL, apiKey, model, "")
}

// NewClientWithProvider creates a generation client with an explicit provider
// name. An empty providerName triggers auto-detection based on model name,
// API key, and base URL.
func NewClientWithProvider(baseURL, apiKey, model, providerName string) *Client {
	mapped := mapProviderName(providerName, model, apiKey, baseURL)

	// Non-critical: if gollm init fails (e.g. its validator rejects
	// non-standard API key formats on OpenAI-compatible endpoints) we fall
	// back to direct HTTP for everything.
	g, _ := newGollmInstance(baseURL, apiKey, model, providerName)

	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		model:        model,
		providerName: mapped,
		gollmLLM:     g,
		cache:        newPromptCache(defaultCacheSize),
		retryConfig:  utils.DefaultRetryConfig(),
		// No Timeout on the http.Client: local models can take minutes to
		// load. Cancellation is handled via request context.
		httpClient: &http.Client{},
	}
}

// ProviderName returns the name of the active provider.
func (c *Client) ProviderName() string { return c.providerName }

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// SetCacheSize resizes the prompt cache; size <= 0 disables caching.
func (c *Client) SetCacheSize(size int) {
	if size <= 0 {
		c.cache = nil
		return
	}
	c.cache = newPromptCache(size)
}

// Warmup pre-loads the model to reduce first-response latency. Preferred
// path is gollm; on failure it falls back to a direct HTTP generation.
func (c *Client) Warmup(ctx context.Context) error {
	if c.gollmLLM != nil {
		if _, err := c.gollmLLM.Generate(ctx, gollm.NewPrompt("ping")); err == nil {
			return nil
		}
	}
	if _, err := c.generateHTTP(ctx, "ping", Options{}); err != nil {
		return fmt.Errorf("failed to load model %s: %w", c.model, err)
	}
	return nil
}

// Generate sends a prompt and returns the completion text. Identical prompts
// with identical options are served from the bounded in-memory cache.
func (c *Client) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	key := cacheKey(prompt, opts)
	if c.cache != nil {
		if cached, ok := c.cache.get(key); ok {
			return cached, nil
		}
	}

	result, err := c.generateHTTP(ctx, prompt, opts)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		c.cache.put(key, result)
	}
	return result, nil
}

// generateHTTP is the core request logic, cancellable via ctx.
func (c *Client) generateHTTP(ctx context.Context, prompt string, opts Options) (string, error) {
	jsonData, err := buildRequestBody(c.providerName, c.model, prompt, opts)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var result string
	operation := func() error {
		req, reqErr := http.NewRequestWithContext(ctx, "POST", endpointURL(c.baseURL, c.providerName), bytes.NewBuffer(jsonData))
		if reqErr != nil {
			return fmt.Errorf("failed to create request: %w", reqErr)
		}

		setProviderHeaders(req, c.providerName, c.apiKey)

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return fmt.Errorf("failed to send request: %w", doErr)
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("failed to read response: %w", readErr)
		}

		if resp.StatusCode != http.StatusOK {
			apiErr := parseAPIError(resp.StatusCode, body)
			if resp.StatusCode == http.StatusTooManyRequests {
				wait := 30 * time.Second
				if retryAfter := resp.Header.Get("retry-after"); retryAfter != "" {
					var secs int
					if _, scanErr := fmt.Sscanf(retryAfter, "%d", &secs); scanErr == nil && secs > 0 {
						wait = time.Duration(secs) * time.Second
					}
				}
				logger.Warnf("Rate limited (429). Waiting %s...", wait.Round(time.Second))
				time.Sleep(wait)
			}
			return apiErr
		}

		text, parseErr := parseResponseBody(c.providerName, body)
		if parseErr != nil {
			return parseErr
		}
		result = text
		return nil
	}

	if retryErr := utils.ExecuteWithRetryContext(ctx, operation, c.retryConfig); retryErr != nil {
		return "", retryErr
	}

	return result, nil
}
