package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasload/internal/pathutil"
)

// httpMethods are the path item keys that name an operation.
var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true, "query": true,
}

// OperationContext names the API element a diagnostic pointer falls under.
// For pointers under /paths or /webhooks it identifies the operation (or
// path item); for pointers under /components it names the component.
type OperationContext struct {
	// Method is the HTTP method (GET, POST, etc.) - empty for path-level issues
	Method string
	// Path is the API path pattern (e.g., "/users/{id}") or webhook name
	Path string
	// IsWebhook is true when the pointer is under /webhooks
	IsWebhook bool
	// Component is "kind/name" for pointers under /components (e.g. "schemas/Pet")
	Component string
}

// ContextFromPointer derives the operation context of a JSON pointer.
// Returns nil when the pointer is not under /paths, /webhooks or /components.
func ContextFromPointer(pointer string) *OperationContext {
	tokens := pathutil.Split(pointer)
	if len(tokens) < 2 {
		return nil
	}
	switch tokens[0] {
	case "paths", "webhooks":
		c := &OperationContext{Path: tokens[1], IsWebhook: tokens[0] == "webhooks"}
		if len(tokens) > 2 && httpMethods[tokens[2]] {
			c.Method = strings.ToUpper(tokens[2])
		}
		return c
	case "components":
		if len(tokens) < 3 {
			return nil
		}
		return &OperationContext{Component: tokens[1] + "/" + tokens[2]}
	}
	return nil
}

// String returns a formatted string representation of the operation context.
// Returns empty string if the context is empty.
func (c OperationContext) String() string {
	switch {
	case c.IsEmpty():
		return ""
	case c.Component != "":
		return fmt.Sprintf("(component: %s)", c.Component)
	case c.IsWebhook && c.Method != "":
		return fmt.Sprintf("(webhook: %s %s)", c.Method, c.Path)
	case c.IsWebhook:
		return fmt.Sprintf("(webhook: %s)", c.Path)
	case c.Method != "":
		return fmt.Sprintf("(%s %s)", c.Method, c.Path)
	default:
		return fmt.Sprintf("(path: %s)", c.Path)
	}
}

// IsEmpty returns true if the context has no meaningful information.
func (c OperationContext) IsEmpty() bool {
	return c.Method == "" && c.Path == "" && c.Component == ""
}
