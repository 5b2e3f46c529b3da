// Package validate checks inbound request bodies against the fixed shapes
// the API accepts. Each check returns an error naming the first violated
// field; no side effects happen before validation passes.
package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/project-catalyst/catalyst-api/internal/models"
)

// Analyze validates the body of POST /api/analyze.
func Analyze(req *models.AnalyzeRequest) error {
	if len(strings.TrimSpace(req.Description)) < 10 {
		return errors.New("description must be at least 10 characters")
	}
	return nil
}

// Chat validates the body of POST /api/chat.
func Chat(req *models.ChatRequest) error {
	if len(req.Messages) == 0 {
		return errors.New("messages must contain at least one entry")
	}
	for i, m := range req.Messages {
		if m.Role != "user" && m.Role != "model" {
			return fmt.Errorf("messages[%d].role must be \"user\" or \"model\"", i)
		}
		if m.Content == "" {
			return fmt.Errorf("messages[%d].content must not be empty", i)
		}
	}
	return nil
}

// Submission validates the body of POST /api/submit. Checks run in field
// order so the reported violation is always the first one.
func Submission(req *models.SubmissionRequest) error {
	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errors.New("email is not a valid address")
	}
	if req.PhoneNumber == "" {
		return errors.New("phoneNumber is required")
	}
	if req.CollegeName == "" {
		return errors.New("collegeName is required")
	}
	if req.Address == "" {
		return errors.New("address is required")
	}
	if req.ProjectTitle == "" {
		return errors.New("projectTitle is required")
	}
	if len(req.ProjectDescription) < 10 {
		return errors.New("projectDescription must be at least 10 characters")
	}
	if !validProjectType(req.ProjectType) {
		return fmt.Errorf("projectType must be one of %s", strings.Join(models.ProjectTypes, ", "))
	}
	if req.Budget == "" {
		return errors.New("budget is required")
	}
	if a := req.AIAnalysis; a != nil {
		switch a.EstimatedComplexity {
		case models.ComplexityLow, models.ComplexityMedium, models.ComplexityHigh:
		default:
			return errors.New("aiAnalysis.estimatedComplexity must be Low, Medium or High")
		}
	}
	return nil
}

func validProjectType(t string) bool {
	for _, pt := range models.ProjectTypes {
		if t == pt {
			return true
		}
	}
	return false
}
