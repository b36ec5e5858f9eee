// internal/chat/router.go
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tuali-backend/internal/common/logger"
)

// RouteDecision is the router's structured output: which endpoint to
// query and the parameters extracted from the question. A nil
// EndpointID means no data is needed.
type RouteDecision struct {
	EndpointID *int              `json:"endpointId"`
	Parameters map[string]string `json:"parameters"`
}

// noRoute is the fail-soft decision when the model misbehaves.
func noRoute() RouteDecision {
	return RouteDecision{EndpointID: nil, Parameters: map[string]string{}}
}

// Router classifies a free-text question into a RouteDecision with a
// single completion call.
type Router struct {
	completer Completer
	logger    logger.Logger
	now       func() time.Time
}

// Completer matches llm.Client; kept local so the chat package depends
// on the call primitive only.
type Completer interface {
	Complete(ctx context.Context, caller, prompt string) (string, error)
}

func NewRouter(completer Completer, log logger.Logger) *Router {
	return &Router{
		completer: completer,
		logger:    log.With(map[string]interface{}{"component": "router"}),
		now:       time.Now,
	}
}

// PickEndpoint routes the question. It never fails: any upstream or
// parse problem degrades to the "no endpoint" decision, with the raw
// model text logged for diagnosis.
func (r *Router) PickEndpoint(ctx context.Context, question string) RouteDecision {
	prompt := r.buildPrompt(question)

	raw, err := r.completer.Complete(ctx, "router", prompt)
	if err != nil {
		r.logger.Warn("routing call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return noRoute()
	}

	// Models occasionally wrap the contract JSON in a markdown fence
	// despite the instructions; strip it before the strict parse.
	cleaned := stripCodeFence(raw)

	var decision struct {
		EndpointID *int              `json:"endpointId"`
		Parameters map[string]string `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(cleaned), &decision); err != nil {
		r.logger.Warn("model response violated the JSON contract", map[string]interface{}{
			"error": err.Error(),
			"raw":   raw,
		})
		return noRoute()
	}

	if decision.Parameters == nil {
		decision.Parameters = map[string]string{}
	}
	return RouteDecision{EndpointID: decision.EndpointID, Parameters: decision.Parameters}
}

func (r *Router) buildPrompt(question string) string {
	now := r.now()
	currentDate := now.Format("2006-01-02")
	currentTime := now.Format("15:04:05")

	return fmt.Sprintf(`You are an intelligent router for a retail application for suppliers. Your job is to analyze user questions and route them to the appropriate API endpoint.

Today is %s and the current time is %s.

Given a user question, you must:
1. Determine which endpoint would best provide the information needed
2. Extract any necessary parameters from the question
3. Return a properly formatted JSON response

IMPORTANT FORMATTING INSTRUCTIONS:
- Return ONLY the raw JSON object with no explanation, no code blocks, no backticks
- Do not add markdown anywhere
- Do not add any headers like "Response:" or "JSON:"
- Return strictly the raw JSON text and nothing else
- Your entire response must be valid JSON that can be directly parsed

Use this format:
{"endpointId": number or null,"parameters": {"paramName1": "paramValue1", "paramName2": "paramValue2"}}

If no suitable endpoint exists, return endpointId as null.
If the question doesn't require parameters, return an empty parameters object: {}

this is the endpoint list:
%s

Here is the user question encased in <> tags:
<%s>
`, currentDate, currentTime, DescribeEndpoints(), question)
}

func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
