// Package workerproc validates and decodes queue payloads for the extraction
// worker, classifying failures so the poll loop can tell unrecoverable
// payloads (drop) from processing failures (leave for redelivery).
package workerproc

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"bacash-backend/internal/extraction"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode event"
	}
	return "decode event: " + e.Err.Error()
}

// ErrNoRecords indicates a decoded event naming no created objects.
type ErrNoRecords struct {
	Meta MessageMeta
}

func (e ErrNoRecords) Error() string { return "event contains no records" }

// ParseEvent validates and decodes a queue payload into a storage event.
func ParseEvent(body string) (extraction.Event, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return extraction.Event{}, meta, ErrEmptyBody{Meta: meta}
	}

	ev, err := extraction.ParseEvent([]byte(body))
	if err != nil {
		return extraction.Event{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if len(ev.Records) == 0 {
		return ev, meta, ErrNoRecords{Meta: meta}
	}
	return ev, meta, nil
}

// Unrecoverable reports whether err means the payload can never be
// processed and should be deleted rather than redelivered.
func Unrecoverable(err error) bool {
	switch err.(type) {
	case ErrEmptyBody, ErrDecode, ErrNoRecords:
		return true
	default:
		return false
	}
}
