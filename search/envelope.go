package search

import (
	"time"

	"github.com/ncobase/listing/paging"
)

// Envelope is the JSON body of the search API.
type Envelope[T any] struct {
	Success bool             `json:"success"`
	Data    *EnvelopeData[T] `json:"data,omitempty"`
	Error   *EnvelopeError   `json:"error,omitempty"`
	Meta    Meta             `json:"meta"`
}

// EnvelopeData carries one page of content.
type EnvelopeData[T any] struct {
	Content []T    `json:"content"`
	Total   int    `json:"total"`
	HasNext bool   `json:"hasNext"`
	After   string `json:"after,omitempty"`
}

// EnvelopeError describes a failed request.
type EnvelopeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Meta describes the request that produced an envelope.
type Meta struct {
	RequestID      string    `json:"requestId"`
	Timestamp      time.Time `json:"timestamp"`
	ProcessingTime int64     `json:"processingTime"` // milliseconds
}

// NewMeta stamps a response started at start.
func NewMeta(requestID string, start time.Time) Meta {
	now := time.Now()
	return Meta{
		RequestID:      requestID,
		Timestamp:      now.UTC(),
		ProcessingTime: now.Sub(start).Milliseconds(),
	}
}

// Succeed wraps page in a successful envelope.
func Succeed[T any](page *paging.Page[T], meta Meta) *Envelope[T] {
	data := &EnvelopeData[T]{Content: make([]T, 0)}
	if page != nil {
		if page.Items != nil {
			data.Content = page.Items
		}
		data.Total = page.Total
		data.HasNext = page.HasNext
		data.After = page.Cursor
	}
	return &Envelope[T]{Success: true, Data: data, Meta: meta}
}

// Failure builds a failed envelope.
func Failure[T any](code int, message string, meta Meta) *Envelope[T] {
	return &Envelope[T]{
		Success: false,
		Error:   &EnvelopeError{Code: code, Message: message},
		Meta:    meta,
	}
}

// Page converts the envelope data back into a page.
func (e *Envelope[T]) Page() *paging.Page[T] {
	if e.Data == nil {
		return nil
	}
	return &paging.Page[T]{
		Items:   e.Data.Content,
		Total:   e.Data.Total,
		HasNext: e.Data.HasNext,
		Cursor:  e.Data.After,
	}
}
