// Package api implements the HTTP transport: chi handlers for tasks and
// authentication, request decoding and validation, and the mapping from
// internal errors to status codes. Handlers never compose queries or touch
// the store directly; everything goes through the service layer.
package api
