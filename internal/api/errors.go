// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingIdentity is returned when an operation addressed by id is
	// called with a draft entity. No request is sent.
	ErrMissingIdentity = errors.New("api: entity has no id")

	// ErrNilEntity is returned when Create is called without an entity.
	ErrNilEntity = errors.New("api: nil entity")

	// ErrResponseTooLarge is returned when a response body exceeds the
	// client's size limit.
	ErrResponseTooLarge = errors.New("api: response body too large")

	// ErrNotFound matches any *Error with status 404 via errors.Is.
	ErrNotFound = errors.New("api: not found")

	// ErrUnauthorized matches any *Error with status 401 via errors.Is.
	ErrUnauthorized = errors.New("api: unauthorized")
)

// Error is a non-2xx response from the blog API. Title, Detail and
// ErrorKey are filled from an application/problem+json body when present.
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Title      string
	Detail     string
	ErrorKey   string
	Body       string
}

func (e *Error) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is lets callers test for status classes with errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// problem mirrors the RFC 7807 body the backend returns on failures.
type problem struct {
	Title   string `json:"title"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// newError builds an *Error from a failed response body.
func newError(method, path string, status int, body []byte) *Error {
	e := &Error{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Body:       string(body),
	}
	var p problem
	if json.Unmarshal(body, &p) == nil {
		e.Title = p.Title
		e.Detail = p.Detail
		e.ErrorKey = p.Message
	}
	return e
}
