package summary

import (
	"net/http"
	"strings"
)

// Type selects the prompt template.
type Type string

const (
	TypeBrief        Type = "brief"
	TypeDetailed     Type = "detailed"
	TypeBulletPoints Type = "bullet_points"
	TypeTechnical    Type = "technical"
	TypeLayman       Type = "layman"
)

var templates = map[Type]string{
	TypeBrief:        "Provide a short and concise summary of the following text: {text}",
	TypeDetailed:     "Provide a detailed and comprehensive summary of the following text: {text}",
	TypeBulletPoints: "Summarize the following text in bullet points: {text}",
	TypeTechnical:    "Provide a technical summary focusing on key concepts and terminologies: {text}",
	TypeLayman:       "Explain the following text in a simple manner suitable for a general audience: {text}",
}

// ParseType maps a request value to a Type. Unknown values fall back to
// brief; ok reports whether s was recognised.
func ParseType(s string) (t Type, ok bool) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "bullet points":
		return TypeBulletPoints, true
	default:
		if _, known := templates[Type(v)]; known {
			return Type(v), true
		}
		return TypeBrief, false
	}
}

// Prompt renders the template for t around chunk.
func Prompt(t Type, chunk string) string {
	tmpl, ok := templates[t]
	if !ok {
		tmpl = templates[TypeBrief]
	}
	return strings.Replace(tmpl, "{text}", chunk, 1)
}

// Status is the aggregate result of a summarization.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusError   Status = "error"
)

// Per-chunk error labels and outcome messages.
const (
	ErrLabelTimeout   = "Timeout error"
	ErrLabelGenerate  = "Error generating summary"
	ErrLabelCancelled = "Request cancelled"

	MsgSuccess  = "Summary generated successfully"
	MsgPartial  = "Summary generated with errors"
	MsgFailed   = "Error generating summary"
	MsgChunking = "Error chunking text"
	MsgNoText   = "No text to summarize"
)

// Outcome is built chunk by chunk and never mutated after return.
type Outcome struct {
	Status  Status   `json:"status"`
	Summary string   `json:"summary,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Chunks  int      `json:"chunks"`
	Message string   `json:"-"`
	Code    int      `json:"-"`
}

// classify derives status, message and code from per-chunk results.
func classify(results, errs []string, chunks int) Outcome {
	o := Outcome{Errors: errs, Chunks: chunks}
	switch {
	case len(results) == 0:
		o.Status, o.Message, o.Code = StatusError, MsgFailed, http.StatusInternalServerError
	case len(errs) == 0:
		o.Status, o.Message, o.Code = StatusSuccess, MsgSuccess, http.StatusOK
		o.Summary = strings.Join(results, "\n")
	default:
		o.Status, o.Message, o.Code = StatusPartial, MsgPartial, http.StatusPartialContent
		o.Summary = strings.Join(results, "\n")
	}
	return o
}
