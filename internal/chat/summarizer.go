// internal/chat/summarizer.go
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"tuali-backend/internal/models"
)

// SummarizeFeedback asks the model for a three-sentence plain-text
// summary of a store's feedback.
func (s *Service) SummarizeFeedback(ctx context.Context, storeName string, feedback []models.Feedback) (string, error) {
	serialized, err := json.MarshalIndent(feedback, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are an expert in summarizing customer feedback for retail stores. Your task is to analyze the provided feedback and generate a concise summary that highlights key themes, sentiments, and any actionable insights.
The summary should be in the format of three clear, brief sentences, do not add formatting or bullet points, just plain text.
The feedback for %s is as follows:
%s
`, storeName, serialized)

	return s.composer.completer.Complete(ctx, "summarizer", prompt)
}
