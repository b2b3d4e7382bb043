// Package driving defines the primary ports: the interfaces through
// which external actors (CLI commands, the MCP server, request
// handlers) invoke the core services.
package driving
