package extract

import (
	"context"
	"io"
)

// Span is one extracted text segment with its byte offset in the source.
type Span struct {
	Text   string
	Offset int
}

// Extractor turns an uploaded document into ordered text spans. PDF parsing
// is a collaborator concern; the core only consumes the spans.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) ([]Span, error)
}
