package store

// SourceRef points at a document that contributed context to an answer.
type SourceRef struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
}

// Exchange is one question/answer turn within an ask session.
type Exchange struct {
	Question string      `json:"question"`
	Answer   string      `json:"answer"`
	Sources  []SourceRef `json:"sources"`
}

// Session holds the short-lived conversation state for the ask endpoint.
// It lives in the in-memory store only; nothing security-relevant is cached
// here, every turn re-runs the filtered search under the caller's identity.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	LastQuery string     `json:"last_query"`
	History   []Exchange `json:"history"`
}
