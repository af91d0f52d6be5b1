// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"net/url"
	"strings"
)

// ComponentsPrefix is the prefix shared by every local component reference.
const ComponentsPrefix = "#/components/"

// Component kinds as they appear under "#/components/".
const (
	KindSchemas         = "schemas"
	KindResponses       = "responses"
	KindParameters      = "parameters"
	KindExamples        = "examples"
	KindRequestBodies   = "requestBodies"
	KindHeaders         = "headers"
	KindSecuritySchemes = "securitySchemes"
	KindLinks           = "links"
	KindCallbacks       = "callbacks"
	KindPathItems       = "pathItems"  // OAS 3.1+
	KindMediaTypes      = "mediaTypes" // OAS 3.2+
)

// ComponentRef builds "#/components/{kind}/{name}", escaping the name.
func ComponentRef(kind, name string) string {
	return ComponentsPrefix + kind + "/" + Escape(name)
}

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return ComponentRef(KindSchemas, name)
}

// ParseComponentRef splits a local component reference into its kind and
// unescaped name. Percent-encoded names are decoded as URI fragments are.
// ok is false for external references and for pointers that do not address
// a single component.
func ParseComponentRef(ref string) (kind, name string, ok bool) {
	if !strings.HasPrefix(ref, ComponentsPrefix) {
		return "", "", false
	}
	rest := ref[len(ComponentsPrefix):]
	kind, name, found := strings.Cut(rest, "/")
	if !found || kind == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return kind, Unescape(percentDecode(name)), true
}

// IsLocalRef reports whether ref points into the current document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// percentDecode decodes %XX escapes, leaving malformed input untouched.
func percentDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
