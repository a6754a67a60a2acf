package handlers

import (
	"net/http"
	"strconv"

	"exam-service/internal/models"
	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	Service *service.QuestionService
}

func NewQuestionHandler(s *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{Service: s}
}

// questionRequest carries the writable fields only; the id is assigned by
// the server and never taken from the payload.
type questionRequest struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	Difficulty int      `json:"difficulty"`
}

func (r *questionRequest) model() *models.Question {
	return &models.Question{
		Question:   r.Question,
		Options:    r.Options,
		Answer:     r.Answer,
		Difficulty: r.Difficulty,
	}
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.Validation(err.Error()))
		return
	}
	question := req.model()
	if err := h.Service.Create(c.Request.Context(), question); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Question created successfully", question)
}

func (h *QuestionHandler) List(c *gin.Context) {
	skip, take := pageParams(c)
	page, err := h.Service.List(c.Request.Context(), skip, take)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Questions fetched successfully", page)
}

func (h *QuestionHandler) Get(c *gin.Context) {
	question, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Question fetched successfully", question)
}

func (h *QuestionHandler) Update(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.Validation(err.Error()))
		return
	}
	question, err := h.Service.Update(c.Request.Context(), c.Param("id"), req.model())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusAccepted, "Question updated successfully", question)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Question deleted successfully", true)
}

func pageParams(c *gin.Context) (skip, take int64) {
	skip, _ = strconv.ParseInt(c.Query("skip"), 10, 64)
	take, _ = strconv.ParseInt(c.Query("take"), 10, 64)
	return skip, take
}
