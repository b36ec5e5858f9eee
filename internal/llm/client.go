// internal/llm/client.go

// Package llm is the completion service client shared by the intent
// router, the answer composer and the feedback summarizer. It is the
// single point of upstream-failure handling: bounded retries with
// exponential backoff, then a typed error.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"tuali-backend/internal/common/config"
	"tuali-backend/internal/common/errors"
	"tuali-backend/internal/common/logger"
	"tuali-backend/internal/common/metrics"
)

type Client struct {
	cfg        config.LLMConfig
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg config.LLMConfig, log logger.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			// No client-level timeout; the per-call context governs.
		},
		logger: log.With(map[string]interface{}{"component": "llm"}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one prompt as a single user message and returns the
// first candidate's text. caller labels the metrics series.
func (c *Client) Complete(ctx context.Context, caller, prompt string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.CompletionCallDuration.WithLabelValues(caller).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.Timeout)*time.Millisecond)
	defer cancel()

	body, err := json.Marshal(completionRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", errors.NewUpstreamCompletionError(err)
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				metrics.CompletionCallsTotal.WithLabelValues(caller, "timeout").Inc()
				return "", errors.NewCompletionTimeoutError()
			}
		}

		// The request body is consumed on every attempt, so build a
		// fresh request each time.
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
		if reqErr != nil {
			return "", errors.NewUpstreamCompletionError(reqErr)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, lastErr = c.httpClient.Do(req)

		if ctx.Err() != nil ||
			stderrors.Is(lastErr, context.DeadlineExceeded) ||
			stderrors.Is(lastErr, context.Canceled) {
			metrics.CompletionCallsTotal.WithLabelValues(caller, "timeout").Inc()
			return "", errors.NewCompletionTimeoutError()
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil {
		metrics.CompletionCallsTotal.WithLabelValues(caller, "error").Inc()
		return "", errors.NewUpstreamCompletionError(lastErr)
	}
	if resp == nil {
		metrics.CompletionCallsTotal.WithLabelValues(caller, "error").Inc()
		return "", errors.NewUpstreamCompletionError(fmt.Errorf("no successful response after retries"))
	}
	defer resp.Body.Close()

	var apiResponse completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		metrics.CompletionCallsTotal.WithLabelValues(caller, "error").Inc()
		return "", errors.NewUpstreamCompletionError(fmt.Errorf("decode error: %v", err))
	}
	if len(apiResponse.Choices) == 0 {
		metrics.CompletionCallsTotal.WithLabelValues(caller, "error").Inc()
		return "", errors.NewUpstreamCompletionError(fmt.Errorf("response contained no choices"))
	}

	metrics.CompletionCallsTotal.WithLabelValues(caller, "ok").Inc()
	return apiResponse.Choices[0].Message.Content, nil
}
