package extract

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// PlainTextExtractor reads UTF-8 text and emits one span per paragraph
// (blank-line separated). It is the default extractor; PDF and office
// formats plug in behind the same interface.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extract(ctx context.Context, r io.Reader) ([]Span, error) {
	var spans []Span
	var current strings.Builder
	offset := 0
	spanStart := 0

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	flush := func() {
		text := strings.TrimSpace(current.String())
		if text != "" {
			spans = append(spans, Span{Text: text, Offset: spanStart})
		}
		current.Reset()
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			spanStart = offset + len(line) + 1
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
		offset += len(line) + 1
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, err
	}
	flush()

	return spans, nil
}

var _ Extractor = (*PlainTextExtractor)(nil)
