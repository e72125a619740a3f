package collector

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/qepting91/reddit-book-reviews/internal/domain"
)

// TruncationMarker is appended to bodies cut at the display limit.
const TruncationMarker = "..."

// Bodies reddit substitutes for deleted or moderated comments.
const (
	bodyDeleted = "[deleted]"
	bodyRemoved = "[removed]"
)

// Extractor filters a thread's raw comments into display records.
type Extractor struct {
	source        domain.ThreadSource
	minBodyLength int
	maxBodyLength int
	logger        *slog.Logger
}

func NewExtractor(source domain.ThreadSource, minBodyLength, maxBodyLength int, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		source:        source,
		minBodyLength: minBodyLength,
		maxBodyLength: maxBodyLength,
		logger:        logger,
	}
}

// Extract returns at most maxComments records in source order, or a
// diagnostic when the thread could not be read. It never panics on bad input.
func (e *Extractor) Extract(ctx context.Context, threadURL string, maxComments int) domain.ExtractionResult {
	if maxComments <= 0 {
		return domain.Failed(domain.NewDiagnostic(domain.KindInvalidInput, "max comments must be positive, got %d", maxComments))
	}

	raw, err := e.source.FetchComments(ctx, threadURL)
	if err != nil {
		e.logger.Warn("Thread fetch failed", "url", threadURL, "err", err)
		return domain.Failed(diagnose(err))
	}

	records := make([]domain.CommentRecord, 0, maxComments)
	for _, c := range raw {
		if len(records) >= maxComments {
			break
		}
		rec, ok := e.clean(c)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	e.logger.Debug("Thread extracted", "url", threadURL, "raw", len(raw), "kept", len(records))
	return domain.Succeeded(records)
}

func (e *Extractor) clean(c domain.RawComment) (domain.CommentRecord, bool) {
	body := strings.TrimSpace(c.Body)
	if body == "" || body == bodyDeleted || body == bodyRemoved {
		return domain.CommentRecord{}, false
	}
	if utf8.RuneCountInString(body) < e.minBodyLength {
		return domain.CommentRecord{}, false
	}

	author := strings.TrimSpace(c.Author)
	if author == "" {
		author = domain.AuthorUnknown
	}

	return domain.CommentRecord{
		Author: author,
		Body:   Truncate(body, e.maxBodyLength),
		Score:  c.Score,
	}, true
}

// Truncate cuts s to max runes and appends TruncationMarker when it had to cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:max]), unicode.IsSpace) + TruncationMarker
}

func diagnose(err error) *domain.Diagnostic {
	switch {
	case errors.Is(err, ErrStatus):
		return domain.NewDiagnostic(domain.KindStatus, "thread request rejected: %v", err)
	case errors.Is(err, ErrFormat):
		return domain.NewDiagnostic(domain.KindFormat, "thread data not in the expected shape: %v", err)
	default:
		return domain.NewDiagnostic(domain.KindTransport, "thread fetch failed: %v", err)
	}
}
