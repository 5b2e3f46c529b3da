package service

import (
	"context"
	"log"
	"time"

	"github.com/project-catalyst/catalyst-api/internal/mail"
	"github.com/project-catalyst/catalyst-api/internal/models"
)

// RowAppender persists one submission row to the append-only store.
type RowAppender interface {
	Append(ctx context.Context, row []any) error
}

// Notifier sends the submission notifications, best-effort.
type Notifier interface {
	TrySend(p mail.Payload) mail.Status
}

// SubmissionService orchestrates a submission: persist the row
// synchronously, then notify without blocking the response.
type SubmissionService struct {
	rows   RowAppender
	notify Notifier
	now    func() time.Time
}

func NewSubmissionService(rows RowAppender, notify Notifier) *SubmissionService {
	return &SubmissionService{rows: rows, notify: notify, now: time.Now}
}

// Submit appends the submission row and, only after the append succeeded,
// fires the notification step in a detached goroutine. The row is the
// durable record: append failures fail the submission, notification
// failures are only visible in the logs.
func (s *SubmissionService) Submit(ctx context.Context, req *models.SubmissionRequest) error {
	if err := s.rows.Append(ctx, BuildRow(s.now().UTC(), req)); err != nil {
		return err
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("notify: PANIC: %v", rec)
			}
		}()
		st := s.notify.TrySend(mail.Payload{
			Name:               req.Name,
			Email:              req.Email,
			ProjectTitle:       req.ProjectTitle,
			ProjectDescription: req.ProjectDescription,
			ProjectType:        req.ProjectType,
			Budget:             req.Budget,
			AIAnalysis:         req.AIAnalysis,
		})
		log.Printf("notify: client=%t admin=%t", st.ClientSent, st.AdminSent)
	}()

	return nil
}

// BuildRow flattens a submission into the fixed 13-column sheet layout:
// timestamp, the nine form fields in form order, then the three analysis
// fields (empty strings when no analysis was run).
func BuildRow(ts time.Time, req *models.SubmissionRequest) []any {
	summary, category, complexity := "", "", ""
	if a := req.AIAnalysis; a != nil {
		summary, category, complexity = a.Summary, a.Category, a.EstimatedComplexity
	}
	return []any{
		ts.Format(time.RFC3339),
		req.Name,
		req.Email,
		req.PhoneNumber,
		req.CollegeName,
		req.Address,
		req.ProjectTitle,
		req.ProjectDescription,
		req.ProjectType,
		req.Budget,
		summary,
		category,
		complexity,
	}
}
