package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// A client-supplied id must never reach the stored document; the server
// assigns identity on insert.
func TestQuestionRequestIgnoresClientID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"id":"64b0c5f2a1d2e3f405060708","question":"What is the capital of France?","options":["Paris","Lyon"],"answer":"Paris","difficulty":3}`
	c.Request = httptest.NewRequest(http.MethodPost, "/questions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	q := req.model()
	if !q.ID.IsZero() {
		t.Errorf("client-supplied id leaked into the model: %s", q.ID.Hex())
	}
	if q.Question != "What is the capital of France?" || q.Answer != "Paris" || q.Difficulty != 3 {
		t.Errorf("writable fields not carried over: %+v", q)
	}
	if len(q.Options) != 2 {
		t.Errorf("options = %v, want 2 entries", q.Options)
	}
}
