package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// review runs an approve or reject call for the request named in the path.
// The body is optional and carries only remarks.
func review(w http.ResponseWriter, r *http.Request, reviewer approval.Reviewer, approve bool) {
	reviewerID := employeeIDFromContext(r)
	if reviewerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var in approval.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	in.RequestID = chi.URLParam(r, "id")
	in.ReviewerID = reviewerID

	decide := reviewer.Reject
	if approve {
		decide = reviewer.Approve
	}

	res, err := decide(r.Context(), in)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.ReviewResult(w, res)
}
