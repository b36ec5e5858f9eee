// internal/api/auth.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tuali-backend/internal/common/errors"
	"tuali-backend/internal/common/validation"
	"tuali-backend/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userPublicView strips the credential field from a user row.
type userPublicView struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func publicView(u *models.User) userPublicView {
	return userPublicView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Username and password are required",
		})
		return
	}

	user, err := s.store.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "An error occurred while processing your request")
		return
	}
	if user == nil {
		// Uniform message: never reveal which field was wrong.
		respondError(c, errors.NewAuthenticationError(), "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": publicView(user)})
}

func (s *Server) handleRegister(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errors.NewValidationError(err.Error()), "")
		return
	}
	if err := validation.ValidateRegister(payload); err != nil {
		respondError(c, errors.NewValidationError(err.Error()), "")
		return
	}

	data := models.NewUser{
		Username:  stringField(payload, "username"),
		Password:  stringField(payload, "password"),
		Email:     stringField(payload, "email"),
		FirstName: stringField(payload, "first_name"),
		LastName:  stringField(payload, "last_name"),
		Role:      stringField(payload, "role"),
	}

	user, err := s.store.Register(c.Request.Context(), data)
	if err != nil {
		respondError(c, err, "An error occurred while processing your request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": publicView(user)})
}
