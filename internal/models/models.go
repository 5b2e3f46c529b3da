package models

// Project types accepted by the submission form.
const (
	ProjectTypeWeb      = "web"
	ProjectTypeMobile   = "mobile"
	ProjectTypeDesign   = "design"
	ProjectTypeOther    = "other"
	ProjectTypeHardware = "hardware"
)

// ProjectTypes lists all accepted projectType values, in the order they
// appear in the form.
var ProjectTypes = []string{
	ProjectTypeWeb,
	ProjectTypeMobile,
	ProjectTypeDesign,
	ProjectTypeOther,
	ProjectTypeHardware,
}

// Complexity levels the analysis model may assign.
const (
	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"
)

// AIAnalysis is the structured result of analyzing a project description.
type AIAnalysis struct {
	Summary             string `json:"summary"`
	Category            string `json:"category"`
	EstimatedComplexity string `json:"estimatedComplexity"`
}

// SubmissionRequest is one project submission as received from the form.
// aiAnalysis is optional; the client may submit without running analysis.
type SubmissionRequest struct {
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	PhoneNumber        string      `json:"phoneNumber"`
	CollegeName        string      `json:"collegeName"`
	Address            string      `json:"address"`
	ProjectTitle       string      `json:"projectTitle"`
	ProjectDescription string      `json:"projectDescription"`
	ProjectType        string      `json:"projectType"`
	Budget             string      `json:"budget"`
	AIAnalysis         *AIAnalysis `json:"aiAnalysis,omitempty"`
}

// ChatMessage is one turn of the chatbot conversation. The full history is
// resent by the client on every call; the server keeps no session state.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Description string `json:"description"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}
