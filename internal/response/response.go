// Package response defines the envelope every surface returns.
package response

import (
	"net/http"

	"doc-summarizer/internal/extractor"
	"doc-summarizer/internal/summary"
)

// Response is the outward envelope. Code follows HTTP semantics.
type Response struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *Data  `json:"data,omitempty"`
}

// Data carries whichever payload fields the operation produced.
type Data struct {
	Status   string             `json:"status"`
	Summary  string             `json:"summary,omitempty"`
	Errors   []string           `json:"errors,omitempty"`
	Chunks   int                `json:"chunks,omitempty"`
	FilePath string             `json:"file_path,omitempty"`
	FileType extractor.FileType `json:"file_type,omitempty"`
	Content  string             `json:"content,omitempty"`
}

// Fail builds an envelope without data.
func Fail(code int, message string) Response {
	return Response{Success: false, Code: code, Message: message}
}

// FromExtraction wraps an extraction result. Content is included only on
// success.
func FromExtraction(r extractor.Result) Response {
	status := string(summary.StatusSuccess)
	if !r.Success {
		status = string(summary.StatusError)
	}
	return Response{
		Success: r.Success,
		Code:    r.Code,
		Message: r.Message,
		Data: &Data{
			Status:   status,
			FilePath: r.FilePath,
			FileType: r.FileType,
			Content:  r.Content,
		},
	}
}

// FromSummary wraps a summary outcome. A partial outcome still counts as a
// success because a usable summary was produced.
func FromSummary(o summary.Outcome) Response {
	code := o.Code
	if code == 0 {
		code = http.StatusInternalServerError
	}
	return Response{
		Success: o.Status != summary.StatusError,
		Code:    code,
		Message: o.Message,
		Data: &Data{
			Status:  string(o.Status),
			Summary: o.Summary,
			Errors:  o.Errors,
			Chunks:  o.Chunks,
		},
	}
}

// WithFile annotates an envelope with the source document.
func (r Response) WithFile(path string, ft extractor.FileType) Response {
	if r.Data == nil {
		r.Data = &Data{Status: string(summary.StatusError)}
	} else {
		d := *r.Data
		r.Data = &d
	}
	r.Data.FilePath = path
	r.Data.FileType = ft
	return r
}

// HTTPStatus is the status line to send for this envelope. 204 responses
// cannot carry a body, so they are sent as 200.
func (r Response) HTTPStatus() int {
	if r.Code == http.StatusNoContent || r.Code == 0 {
		return http.StatusOK
	}
	return r.Code
}
