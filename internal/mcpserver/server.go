// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oasload parser as an MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasload"
)

const serverInstructions = `oasload MCP server: loads OpenAPI 3.x documents and reports every problem found, with its JSON pointer and line.

Configuration: defaults are configurable via OASLOAD_* environment variables set in your MCP client config.

Key settings:
- OASLOAD_REPORT_UNKNOWN_FIELDS (default: false) - warn about fields no handler recognizes
- OASLOAD_STRICT_REFS (default: false) - warn when an example's guiding $ref never resolves
- OASLOAD_RESOLVE_REFS (default: false) - link $ref placeholders to their components
- OASLOAD_MAX_DIAGNOSTICS (default: 100) - default page size for diagnostics
- OASLOAD_CACHE_ENABLED (default: true) - disable result caching entirely

Caching: loaded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasload", Version: oasload.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Load an OpenAPI 3.x document and report what was found: version, title, path/operation/schema counts, deferred conversion statistics, and diagnostics with JSON pointer, line and column. Filter diagnostics by severity, group them with group_by (severity or component), and use offset/limit to paginate. Use full=true only for small documents.",
	}, handleParse)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.DiagnosticLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.DiagnosticLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}
