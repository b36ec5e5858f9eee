// internal/chat/orchestrator.go
package chat

import (
	"context"
	"strings"

	"tuali-backend/internal/common/logger"
	"tuali-backend/internal/common/metrics"
	"tuali-backend/internal/models"
)

// FallbackAnswer is returned when the composer produces nothing usable.
const FallbackAnswer = "Sorry, I don't know the answer to that one"

// DataSource is the slice of the repository the chat pipeline reads.
type DataSource interface {
	GetUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	GetStores(ctx context.Context, filter models.StoreFilter) ([]models.Store, error)
	GetFeedback(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error)
	GetCitas(ctx context.Context, filter models.CitaFilter) ([]models.Cita, error)
}

// Service sequences route -> fetch -> compose for one chat turn. Each
// turn costs at most two completion calls and holds no state beyond
// the in-flight request.
type Service struct {
	router   *Router
	composer *Composer
	data     DataSource
	logger   logger.Logger
}

func NewService(completer Completer, data DataSource, log logger.Logger) *Service {
	return &Service{
		router:   NewRouter(completer, log),
		composer: NewComposer(completer, log),
		data:     data,
		logger:   log.With(map[string]interface{}{"component": "chat"}),
	}
}

// Chat answers one free-text question. Routing failures and fetch
// failures both degrade to composing over the "no data needed"
// sentinel so the assistant stays responsive; only a failed or empty
// compose yields the canned fallback.
func (s *Service) Chat(ctx context.Context, prompt string) (string, error) {
	decision := s.router.PickEndpoint(ctx, prompt)

	data := s.fetchData(ctx, decision)

	answer, err := s.composer.ComposeAnswer(ctx, prompt, data)
	if err != nil {
		s.logger.Error("compose failed", map[string]interface{}{"error": err.Error()})
		metrics.ChatTurnsTotal.WithLabelValues("fallback").Inc()
		return FallbackAnswer, nil
	}
	if strings.TrimSpace(answer) == "" {
		metrics.ChatTurnsTotal.WithLabelValues("fallback").Inc()
		return FallbackAnswer, nil
	}

	metrics.ChatTurnsTotal.WithLabelValues("ok").Inc()
	return answer, nil
}

// fetchData resolves the route decision against the data source.
// Unknown endpoint ids and data-layer errors both map to the sentinel:
// the turn proceeds to compose either way.
func (s *Service) fetchData(ctx context.Context, decision RouteDecision) interface{} {
	if decision.EndpointID == nil {
		return NoDataSentinel
	}

	var (
		data interface{}
		err  error
	)
	switch *decision.EndpointID {
	case EndpointUsers:
		data, err = s.data.GetUsers(ctx, models.UserFilterFromParams(decision.Parameters))
	case EndpointStores:
		data, err = s.data.GetStores(ctx, models.StoreFilterFromParams(decision.Parameters))
	case EndpointFeedback:
		data, err = s.data.GetFeedback(ctx, models.FeedbackFilterFromParams(decision.Parameters))
	case EndpointCitas:
		data, err = s.data.GetCitas(ctx, models.CitaFilterFromParams(decision.Parameters))
	default:
		s.logger.Warn("router selected unknown endpoint", map[string]interface{}{
			"endpointId": *decision.EndpointID,
		})
		return NoDataSentinel
	}

	if err != nil {
		s.logger.Error("fetch failed, composing without data", map[string]interface{}{
			"endpointId": *decision.EndpointID,
			"error":      err.Error(),
		})
		return NoDataSentinel
	}
	return data
}
