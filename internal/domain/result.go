package domain

import "fmt"

// Kind classifies a recoverable pipeline failure.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindProvider     Kind = "provider"
	KindNoCandidates Kind = "no_candidates"
	KindTransport    Kind = "transport"
	KindStatus       Kind = "status"
	KindFormat       Kind = "format"
	KindEmptyThread  Kind = "empty_thread"
)

// Diagnostic is a user-facing explanation of why an operation produced no data.
type Diagnostic struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func NewDiagnostic(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (d *Diagnostic) String() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// LocateResult carries the threads found for a title. Diagnostic is set when
// the list is empty, so callers can tell "no matches" from "provider failed".
type LocateResult struct {
	Threads    []ThreadDescriptor
	Diagnostic *Diagnostic
}

// ExtractionResult holds either comment records or a diagnostic, never both.
// Build it with Succeeded or Failed.
type ExtractionResult struct {
	comments   []CommentRecord
	diagnostic *Diagnostic
}

func Succeeded(comments []CommentRecord) ExtractionResult {
	if comments == nil {
		comments = []CommentRecord{}
	}
	return ExtractionResult{comments: comments}
}

func Failed(diag *Diagnostic) ExtractionResult {
	if diag == nil {
		diag = NewDiagnostic(KindFormat, "extraction failed")
	}
	return ExtractionResult{diagnostic: diag}
}

// OK reports whether the result holds comments (possibly zero of them).
func (r ExtractionResult) OK() bool { return r.diagnostic == nil }

// Comments returns the records of a successful result and nil otherwise.
func (r ExtractionResult) Comments() []CommentRecord { return r.comments }

// Diagnostic returns the failure of an unsuccessful result and nil otherwise.
func (r ExtractionResult) Diagnostic() *Diagnostic { return r.diagnostic }

// Empty reports a successful extraction in which no comment survived filtering.
func (r ExtractionResult) Empty() bool { return r.OK() && len(r.comments) == 0 }
