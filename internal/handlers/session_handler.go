package handlers

import (
	"net/http"

	"exam-service/internal/middleware"
	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// Start begins a new attempt at a test and returns the opening question.
func (h *SessionHandler) Start(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	result, err := h.Service.Start(c.Request.Context(), c.Param("testId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Test started successfully", result)
}

// SubmitAnswer records an answer and returns either the next question or
// the end-of-test flag.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	var req struct {
		Answer string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.Validation(err.Error()))
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	result, err := h.Service.SubmitAnswer(c.Request.Context(), userID, c.Param("testId"), c.Param("questionId"), req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Answer submitted successfully", result)
}

// Attempted lists the caller's completed sessions with scoring.
func (h *SessionHandler) Attempted(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	attempts, err := h.Service.AttemptedTests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tests fetched successfully", attempts)
}
