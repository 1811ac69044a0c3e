// Package llm provides the generation-service client used by the debate
// engine. The gollm adapter consolidates provider-specific logic (provider
// name mapping, endpoint URLs, HTTP headers, request building, response
// parsing) so client.go only orchestrates HTTP calls and retries.
package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/teilomillet/gollm"
)

// ---------------------------------------------------------------------------
// Provider name mapping
// ---------------------------------------------------------------------------

// mapProviderName determines the canonical provider name from explicit name,
// model prefix, API key prefix, or base URL. Returns a lowercase string
// compatible with gollm provider names.
func mapProviderName(providerName, model, apiKey, baseURL string) string {
	name := strings.ToLower(strings.TrimSpace(providerName))

	switch name {
	case "anthropic":
		return "anthropic"
	case "openai":
		return "openai"
	case "ollama":
		return "ollama"
	case "groq", "mistral", "deepseek", "openrouter":
		return name
	}

	// Auto-detect by model name prefix.
	lowerModel := strings.ToLower(model)
	switch {
	case strings.HasPrefix(lowerModel, "claude"):
		return "anthropic"
	case strings.HasPrefix(lowerModel, "gpt") ||
		strings.HasPrefix(lowerModel, "o1") ||
		strings.HasPrefix(lowerModel, "o3"):
		return "openai"
	case strings.HasPrefix(lowerModel, "llama") ||
		strings.HasPrefix(lowerModel, "mistral") ||
		strings.HasPrefix(lowerModel, "phi") ||
		strings.HasPrefix(lowerModel, "qwen"):
		// Local model names; the base URL decides if it is an Ollama daemon.
		if strings.Contains(baseURL, ":11434") {
			return "ollama"
		}
		return "openai" // generic OpenAI-compatible
	}

	// Auto-detect by API key prefix.
	if strings.HasPrefix(apiKey, "sk-ant-") {
		return "anthropic"
	}

	// Auto-detect by base URL.
	if strings.Contains(baseURL, ":11434") {
		return "ollama"
	}

	// Default: OpenAI-compatible.
	return "openai"
}

// ---------------------------------------------------------------------------
// gollm instance factory
// ---------------------------------------------------------------------------

// newGollmInstance creates a configured gollm.LLM. It is used for simple
// Generate calls (warmup, default-parameter generation) where per-call
// sampling overrides are not required.
func newGollmInstance(baseURL, apiKey, model, providerName string) (gollm.LLM, error) {
	mapped := mapProviderName(providerName, model, apiKey, baseURL)

	opts := []gollm.ConfigOption{
		gollm.SetProvider(mapped),
		gollm.SetModel(model),
		gollm.SetAPIKey(apiKey),
		gollm.SetLogLevel(gollm.LogLevelOff),
		gollm.SetMaxRetries(0), // we handle retry ourselves
	}

	if mapped == "ollama" && baseURL != "" {
		opts = append(opts, gollm.SetOllamaEndpoint(baseURL))
	}

	instance, err := gollm.NewLLM(opts...)
	if err != nil {
		return nil, fmt.Errorf("gollm init [%s/%s]: %w", mapped, model, err)
	}

	if baseURL != "" && mapped != "ollama" {
		instance.SetEndpoint(endpointURL(baseURL, mapped))
	}

	return instance, nil
}

// ---------------------------------------------------------------------------
// Endpoint URL and headers
// ---------------------------------------------------------------------------

const anthropicAPIVersion = "2023-06-01"
const anthropicDefaultMaxTokens = 1024

// endpointURL returns the full completion endpoint for the given base URL
// and provider name.
func endpointURL(baseURL, providerName string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	switch providerName {
	case "anthropic":
		return baseURL + "/messages"
	case "ollama":
		return baseURL + "/api/chat"
	default:
		return baseURL + "/chat/completions"
	}
}

// setProviderHeaders sets the required HTTP headers for the given provider.
func setProviderHeaders(req *http.Request, providerName, apiKey string) {
	req.Header.Set("Content-Type", "application/json")

	switch providerName {
	case "anthropic":
		req.Header.Set("anthropic-version", anthropicAPIVersion)
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-api-key", apiKey)
	case "ollama":
		// Local daemon, no auth.
	default:
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}

// ---------------------------------------------------------------------------
// Request body building
// ---------------------------------------------------------------------------

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type ollamaOptions struct {
	Temperature   *float64 `json:"temperature,omitempty"`
	NumPredict    *int     `json:"num_predict,omitempty"`
	NumCtx        int      `json:"num_ctx,omitempty"`
	RepeatPenalty float64  `json:"repeat_penalty,omitempty"`
}

type ollamaRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options,omitempty"`
}

// buildRequestBody creates the JSON request body for the specified provider.
func buildRequestBody(providerName, model, prompt string, opts Options) ([]byte, error) {
	messages := []chatMessage{{Role: "user", Content: prompt}}

	switch providerName {
	case "anthropic":
		mt := anthropicDefaultMaxTokens
		if opts.MaxTokens != nil && *opts.MaxTokens > 0 {
			mt = *opts.MaxTokens
		}
		return json.Marshal(anthropicRequest{
			Model:       model,
			Messages:    messages,
			MaxTokens:   mt,
			Temperature: opts.Temperature,
		})

	case "ollama":
		return json.Marshal(ollamaRequest{
			Model:    model,
			Messages: messages,
			Stream:   false,
			Options: ollamaOptions{
				Temperature:   opts.Temperature,
				NumPredict:    opts.MaxTokens,
				NumCtx:        opts.ContextWindow,
				RepeatPenalty: opts.RepeatPenalty,
			},
		})

	default:
		return json.Marshal(openAIRequest{
			Model:       model,
			Messages:    messages,
			Temperature: opts.Temperature,
			MaxTokens:   opts.MaxTokens,
			Stream:      false,
		})
	}
}

// ---------------------------------------------------------------------------
// Response parsing
// ---------------------------------------------------------------------------

type openAIResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type anthropicResponse struct {
	Type    string `json:"type"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type ollamaResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// parseResponseBody extracts the completion text from the raw JSON response.
func parseResponseBody(providerName string, body []byte) (string, error) {
	switch providerName {
	case "anthropic":
		var resp anthropicResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Anthropic response: %w", err)
		}
		if resp.Type == "error" {
			return "", fmt.Errorf("Anthropic API error (%s): %s", resp.Error.Type, resp.Error.Message)
		}
		var text strings.Builder
		for _, item := range resp.Content {
			if item.Type == "text" {
				text.WriteString(item.Text)
			}
		}
		return strings.TrimSpace(text.String()), nil

	case "ollama":
		var resp ollamaResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Ollama response: %w", err)
		}
		return strings.TrimSpace(resp.Message.Content), nil

	default:
		var resp openAIResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to unmarshal response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response choices returned")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}
}

// parseAPIError extracts a clean error message from an API error response body.
func parseAPIError(statusCode int, body []byte) error {
	var errBody struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errBody) == nil {
		if errBody.Error.Message != "" {
			msg := errBody.Error.Message
			if len(msg) > 300 {
				msg = msg[:300] + "..."
			}
			if errBody.Error.Type != "" {
				return fmt.Errorf("API error %d [%s]: %s", statusCode, errBody.Error.Type, msg)
			}
			return fmt.Errorf("API error %d: %s", statusCode, msg)
		}
		if errBody.Message != "" {
			msg := errBody.Message
			if len(msg) > 300 {
				msg = msg[:300] + "..."
			}
			return fmt.Errorf("API error %d: %s", statusCode, msg)
		}
	}
	raw := strings.TrimSpace(string(body))
	if len(raw) > 300 {
		raw = raw[:300] + "..."
	}
	return fmt.Errorf("API error %d: %s", statusCode, raw)
}
