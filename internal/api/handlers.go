// internal/api/handlers.go
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tuali-backend/internal/common/errors"
	"tuali-backend/internal/common/validation"
	"tuali-backend/internal/models"
)

// respondError writes the uniform {success:false, error} envelope.
// Internal details never reach the body; the request logger carries
// them.
func respondError(c *gin.Context, err error, publicMsg string) {
	status := errors.HTTPStatus(errors.CodeOf(err))
	msg := publicMsg
	if status != http.StatusInternalServerError {
		// Client-caused failures surface the typed message.
		var stdErr *errors.StandardError
		if e, ok := err.(*errors.StandardError); ok {
			stdErr = e
		}
		if stdErr != nil {
			msg = stdErr.Message
		}
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// --- chat ---

type chatRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Prompt is required",
		})
		return
	}

	response, err := s.chat.Chat(c.Request.Context(), req.Prompt)
	if err != nil {
		s.logger.Error("chat turn failed", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "An error occurred while processing your request",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "response": response})
}

// --- filtered reads ---

// queryParams flattens the query string into the parameter bag the
// per-entity filter parsers consume.
func queryParams(c *gin.Context) map[string]string {
	params := map[string]string{}
	for key, vals := range c.Request.URL.Query() {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}

func (s *Server) handleGetUsers(c *gin.Context) {
	users, err := s.store.GetUsers(c.Request.Context(), models.UserFilterFromParams(queryParams(c)))
	if err != nil {
		respondError(c, err, "An error occurred while fetching users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

func (s *Server) handleGetStores(c *gin.Context) {
	stores, err := s.store.GetStores(c.Request.Context(), models.StoreFilterFromParams(queryParams(c)))
	if err != nil {
		respondError(c, err, "An error occurred while fetching stores")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stores})
}

func (s *Server) handleGetFeedback(c *gin.Context) {
	feedback, err := s.store.GetFeedback(c.Request.Context(), models.FeedbackFilterFromParams(queryParams(c)))
	if err != nil {
		respondError(c, err, "An error occurred while fetching feedback")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": feedback})
}

func (s *Server) handleGetCitas(c *gin.Context) {
	citas, err := s.store.GetCitas(c.Request.Context(), models.CitaFilterFromParams(queryParams(c)))
	if err != nil {
		respondError(c, err, "An error occurred while fetching citas")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": citas})
}

func (s *Server) handleCreateCita(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errors.NewValidationError(err.Error()), "")
		return
	}
	if err := validation.ValidateCita(payload); err != nil {
		respondError(c, errors.NewValidationError(err.Error()), "")
		return
	}

	data := models.NewCita{
		StoreID: intField(payload, "store_id"),
		Date:    stringField(payload, "date"),
		Time:    stringField(payload, "time"),
	}
	if raw, ok := payload["user_ids"].([]interface{}); ok {
		for _, v := range raw {
			if f, ok := v.(float64); ok {
				data.UserIDs = append(data.UserIDs, int(f))
			}
		}
	}

	cita, err := s.store.CreateCita(c.Request.Context(), data)
	if err != nil {
		respondError(c, err, "An error occurred while creating the cita")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": cita})
}

// --- aggregates ---

func (s *Server) handleSummarizedFeedback(c *gin.Context) {
	storeID, err := strconv.Atoi(c.Param("store_id"))
	if err != nil {
		respondError(c, errors.NewValidationError("store_id must be an integer"), "")
		return
	}

	ctx := c.Request.Context()
	store, err := s.store.StoreByID(ctx, storeID)
	if err != nil {
		respondError(c, err, "An error occurred while fetching the store")
		return
	}
	if store == nil {
		respondError(c, errors.NewNotFoundError("Store", c.Param("store_id")), "")
		return
	}

	if cached := s.summaries.Get(ctx, storeID); cached != "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"store_id": storeID,
			"summary":  cached,
			"cached":   true,
		}})
		return
	}

	feedback, err := s.store.GetFeedback(ctx, models.FeedbackFilter{StoreID: storeID})
	if err != nil {
		respondError(c, err, "An error occurred while fetching feedback")
		return
	}

	summary, err := s.chat.SummarizeFeedback(ctx, store.Nombre, feedback)
	if err != nil {
		respondError(c, err, "An error occurred while summarizing feedback")
		return
	}
	s.summaries.Set(ctx, storeID, summary)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"store_id": storeID,
		"summary":  summary,
		"cached":   false,
	}})
}

func (s *Server) handleLeastVisitedStores(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	stores, err := s.store.LeastVisitedStores(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "An error occurred while fetching stores")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stores})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "An error occurred while fetching stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func intField(payload map[string]interface{}, key string) int {
	if f, ok := payload[key].(float64); ok {
		return int(f)
	}
	return 0
}

func stringField(payload map[string]interface{}, key string) string {
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}
