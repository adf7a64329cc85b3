// Package model defines data structures for mcp-places.
//
// This package contains:
//   - JSON-RPC 2.0: message/response/error structures
//   - MCP: initialize/tools method payloads
//   - ConfigMap: nested process configuration
//   - Place: restaurant search record
package model
