package handlers

import (
	"net/http"

	"exam-service/internal/service"

	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	Service *service.TestService
}

func NewTestHandler(s *service.TestService) *TestHandler {
	return &TestHandler{Service: s}
}

type testRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Questions   []string `json:"questions"`
}

func (h *TestHandler) Create(c *gin.Context) {
	var req testRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.Validation(err.Error()))
		return
	}
	test, err := h.Service.Create(c.Request.Context(), req.Title, req.Description, req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Test created successfully", test)
}

func (h *TestHandler) List(c *gin.Context) {
	skip, take := pageParams(c)
	page, err := h.Service.List(c.Request.Context(), skip, take)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Tests fetched successfully", page)
}

func (h *TestHandler) Get(c *gin.Context) {
	test, err := h.Service.Get(c.Request.Context(), c.Param("testId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Test fetched successfully", test)
}

// GetByURL resolves a share slug. The route reuses the :testId wildcard
// (gin allows only one name per position); its value here is the slug.
func (h *TestHandler) GetByURL(c *gin.Context) {
	summary, err := h.Service.GetByURL(c.Request.Context(), c.Param("testId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Test fetched successfully", summary)
}

func (h *TestHandler) Update(c *gin.Context) {
	var req testRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.Validation(err.Error()))
		return
	}
	test, err := h.Service.Update(c.Request.Context(), c.Param("testId"), req.Title, req.Description, req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusAccepted, "Test updated successfully", test)
}

func (h *TestHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("testId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Test deleted successfully", true)
}
