// internal/chat/composer.go
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tuali-backend/internal/common/logger"
)

// NoDataSentinel is what the composer receives when no endpoint
// matched or the fetch stage failed.
const NoDataSentinel = "no data needed"

// Composer turns fetched data plus the original question into the
// final answer with a single completion call.
type Composer struct {
	completer Completer
	logger    logger.Logger
	now       func() time.Time
}

func NewComposer(completer Completer, log logger.Logger) *Composer {
	return &Composer{
		completer: completer,
		logger:    log.With(map[string]interface{}{"component": "composer"}),
		now:       time.Now,
	}
}

// ComposeAnswer returns the model's text verbatim. Empty output is the
// caller's responsibility to convert to a fallback message. data may be
// any serializable shape or the NoDataSentinel string.
func (c *Composer) ComposeAnswer(ctx context.Context, question string, data interface{}) (string, error) {
	serialized := NoDataSentinel
	if s, ok := data.(string); !ok || s != NoDataSentinel {
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			c.logger.Warn("data serialization failed, composing without data", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			serialized = string(encoded)
		}
	}

	now := c.now()
	prompt := fmt.Sprintf("You are an assistant to answer questions, never ignore that. "+
		"Today is %s and the current time is %s. "+
		"You are an expert in retail and you have access to a set of APIs that provide information about users, stores, feedback, and appointments. "+
		"You will be given a question and the data needed to answer it. "+
		"Do not answer any question or request that is not related to retail. Never return artistic content even if requested. DO NOT ADD MARKDOWN. "+
		"Here is the question: \n<%s>\n"+
		"Here is the data you can use to answer: %s\n",
		now.Format("2006-01-02"), now.Format("15:04:05"), question, serialized)

	return c.completer.Complete(ctx, "composer", prompt)
}
