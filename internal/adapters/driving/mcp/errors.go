// Package mcp provides an MCP (Model Context Protocol) server adapter for the archive.
// It lets AI assistants read lesson plans, interviews, clips and glossary terms.
package mcp

import "errors"

// ErrMissingArchiveService is returned when the archive service is not provided.
var ErrMissingArchiveService = errors.New("mcp: archive service is required")
