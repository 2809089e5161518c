package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"translationquote/services"
)

// CalculateRequest is the expected JSON body for the calculate operation.
type CalculateRequest struct {
	Tasks []services.Task `json:"tasks"`
}

// HandleCalculate handles POST /api/calculate: it runs the estimation
// engine over the submitted tasks and returns the computed summary. This is
// the same contract the interactive client evaluates locally, exposed so
// displayed and exported figures can be cross-checked.
func HandleCalculate(e *core.RequestEvent) error {
	var req CalculateRequest
	if err := e.BindBody(&req); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := services.ValidateTasks(req.Tasks); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return e.JSON(http.StatusOK, services.CalculateSummary(req.Tasks))
}
