package dto

import "github.com/google/uuid"

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k" validate:"omitempty,min=1,max=50"`
}

type SearchResultDTO struct {
	ChunkId        uuid.UUID `json:"chunk_id"`
	DocumentId     uuid.UUID `json:"document_id"`
	Title          string    `json:"title"`
	Text           string    `json:"text"`
	Score          float64   `json:"score"`
	Department     string    `json:"department"`
	Classification string    `json:"classification"`
}

type SearchResponse struct {
	Results []SearchResultDTO `json:"results"`
	Count   int               `json:"count"`
}

type AskRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionId string `json:"session_id"`
}

type AskSourceDTO struct {
	DocumentId uuid.UUID `json:"document_id"`
	Title      string    `json:"title"`
}

type AskResponse struct {
	Answer    string         `json:"answer"`
	Sources   []AskSourceDTO `json:"sources"`
	SessionId string         `json:"session_id"`
}
