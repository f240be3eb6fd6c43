package handler

import (
	"net/http"

	"github.com/mcoot/quizbingo/internal/api/response"
	"github.com/mcoot/quizbingo/internal/services/quizbank"
)

// HealthHandler reports liveness
type HealthHandler struct {
	storageType string
	quizBank    *quizbank.Service
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storageType string, quizBank *quizbank.Service) *HealthHandler {
	return &HealthHandler{storageType: storageType, quizBank: quizBank}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.Health{
		Status:  "ok",
		Storage: h.storageType,
		Quizzes: h.quizBank.Count(),
	})
}
