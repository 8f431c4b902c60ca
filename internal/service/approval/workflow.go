// Package approval runs the Pending -> Approved | Rejected state machine
// shared by leave, overtime and late-consideration requests.
package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
)

type Workflow[R approval.Reviewable] struct {
	kind     approval.Kind
	repo     approval.Repository[R]
	policy   approval.Policy[R]
	listener approval.Listener
	clock    clock.Clock
}

// NewWorkflow builds the workflow for one request kind. A nil policy means
// no kind-specific checks or side effects; a nil listener drops decision
// notices.
func NewWorkflow[R approval.Reviewable](
	kind approval.Kind,
	repo approval.Repository[R],
	policy approval.Policy[R],
	listener approval.Listener,
	clk clock.Clock,
) *Workflow[R] {
	if policy == nil {
		policy = approval.NoSideEffects[R]{}
	}
	return &Workflow[R]{
		kind:     kind,
		repo:     repo,
		policy:   policy,
		listener: listener,
		clock:    clk,
	}
}

// Submit stores a new pending request unless the requester already has a
// pending one with the same duplicate key.
func (w *Workflow[R]) Submit(ctx context.Context, req R) (R, error) {
	var zero R

	dup, err := w.repo.HasPending(ctx, req)
	if err != nil {
		return zero, database.NewStorageError("check pending "+string(w.kind), err)
	}
	if dup {
		return zero, approval.ErrDuplicateRequest
	}

	created, err := w.repo.Create(ctx, req)
	if err != nil {
		return zero, database.NewStorageError("submit "+string(w.kind), err)
	}
	return created, nil
}

// Approve implements approval.Reviewer.
func (w *Workflow[R]) Approve(ctx context.Context, in approval.ReviewInput) (approval.Result, error) {
	return w.decide(ctx, in, approval.StatusApproved)
}

// Reject implements approval.Reviewer.
func (w *Workflow[R]) Reject(ctx context.Context, in approval.ReviewInput) (approval.Result, error) {
	return w.decide(ctx, in, approval.StatusRejected)
}

func (w *Workflow[R]) decide(ctx context.Context, in approval.ReviewInput, to approval.Status) (approval.Result, error) {
	if err := in.Validate(); err != nil {
		return approval.Result{}, err
	}

	req, err := w.repo.GetByID(ctx, in.RequestID)
	if err != nil {
		if errors.Is(err, approval.ErrRequestNotFound) {
			return w.refuse(in.RequestID, "", approval.ErrRequestNotFound, w.kind.Label()+" not found."), nil
		}
		return approval.Result{}, database.NewStorageError("load "+string(w.kind), err)
	}

	current := req.ReviewState().Status
	if current != approval.StatusPending {
		return w.alreadyReviewed(in.RequestID, current), nil
	}

	if to == approval.StatusApproved {
		if err := w.policy.CheckApprove(ctx, req); err != nil {
			if database.IsStorageError(err) {
				return approval.Result{}, err
			}
			return w.refuse(in.RequestID, current, err, err.Error()), nil
		}
	}

	decision := approval.Decision{
		Status:     to,
		ReviewerID: in.ReviewerID,
		Remarks:    in.Remarks,
		DecidedAt:  w.clock.Now(),
	}
	n, err := w.repo.Decide(ctx, in.RequestID, decision)
	if err != nil {
		return approval.Result{}, database.NewStorageError("record "+string(w.kind)+" decision", err)
	}
	if n == 0 {
		// Another reviewer got there first.
		return w.alreadyReviewed(in.RequestID, ""), nil
	}

	decided := approval.NewNotice(req)
	decided.Status = to
	decided.Remarks = in.Remarks
	decided.ReviewedAt = &decision.DecidedAt

	if to == approval.StatusApproved {
		if err := w.policy.OnApproved(ctx, req); err != nil {
			slog.Error("Approval side effect failed, request needs reconciliation",
				"kind", w.kind, "request_id", in.RequestID, "employee_id", req.RequesterID(), "error", err)
			w.publish(ctx, decided)
			res := w.refuse(in.RequestID, to, approval.ErrReconciliationNeeded,
				w.kind.Label()+" approved but could not be fully applied. It has been flagged for reconciliation.")
			return res, &approval.ReconciliationError{
				Kind:      w.kind,
				RequestID: in.RequestID,
				Err:       database.NewStorageError("apply "+string(w.kind)+" approval", err),
			}
		}
	}

	w.publish(ctx, decided)

	msg := w.kind.Label() + " rejected."
	if to == approval.StatusApproved {
		msg = w.kind.Label() + " approved successfully."
	}
	return approval.Result{
		OK:        true,
		RequestID: in.RequestID,
		Kind:      w.kind,
		Status:    to,
		Message:   msg,
	}, nil
}

func (w *Workflow[R]) publish(ctx context.Context, n approval.Notice) {
	if w.listener != nil {
		w.listener.Decided(ctx, n)
	}
}

func (w *Workflow[R]) refuse(id string, status approval.Status, reason error, msg string) approval.Result {
	return approval.Result{
		RequestID: id,
		Kind:      w.kind,
		Status:    status,
		Message:   msg,
		Code:      approval.CodeOf(reason),
		Reason:    reason,
	}
}

func (w *Workflow[R]) alreadyReviewed(id string, status approval.Status) approval.Result {
	msg := fmt.Sprintf("This %s has already been reviewed.", strings.ToLower(w.kind.Label()))
	if status != "" {
		msg = fmt.Sprintf("This %s has already been %s.", strings.ToLower(w.kind.Label()), strings.ToLower(string(status)))
	}
	return w.refuse(id, status, approval.ErrAlreadyReviewed, msg)
}

// Kind reports which request type the workflow serves.
func (w *Workflow[R]) Kind() approval.Kind {
	return w.kind
}
