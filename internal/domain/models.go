package domain

import "context"

// AuthorUnknown is used when a comment carries no author.
const AuthorUnknown = "unknown"

// ThreadDescriptor identifies one discussion thread found for a title.
// URL is canonical: no query string, no fragment.
type ThreadDescriptor struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// CommentRecord is the clean comment structure handed to renderers
type CommentRecord struct {
	Author string `json:"author"`
	Body   string `json:"body"`
	Score  int    `json:"score"`
}

// SearchResult is one raw organic hit from a search provider.
type SearchResult struct {
	Link  string
	Title string
}

// RawComment is an unfiltered comment entry as a ThreadSource decoded it.
// Absent fields are left at their zero value.
type RawComment struct {
	Author string
	Body   string
	Score  int
}

// SearchProvider runs a single query against an external search engine.
type SearchProvider interface {
	Search(ctx context.Context, query string, num int) ([]SearchResult, error)
}

// ThreadSource fetches the raw comment listing of one thread.
type ThreadSource interface {
	FetchComments(ctx context.Context, threadURL string) ([]RawComment, error)
}

// ThreadLocator turns a book title into candidate threads.
type ThreadLocator interface {
	Locate(ctx context.Context, title string, maxResults int) LocateResult
}

// CommentExtractor turns one thread into filtered comment records.
type CommentExtractor interface {
	Extract(ctx context.Context, threadURL string, maxComments int) ExtractionResult
}
