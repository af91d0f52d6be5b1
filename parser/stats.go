package parser

// DocumentStats contains statistical information about an OAS document
type DocumentStats struct {
	PathCount      int `json:"paths" yaml:"paths"`           // Number of paths defined
	WebhookCount   int `json:"webhooks" yaml:"webhooks"`     // Number of webhooks defined
	OperationCount int `json:"operations" yaml:"operations"` // Total number of operations across paths and webhooks
	SchemaCount    int `json:"schemas" yaml:"schemas"`       // Number of component schemas
	ComponentCount int `json:"components" yaml:"components"` // Number of components of every kind

	// Deferred counts the conversions postponed until the replay pass.
	Deferred DeferredStats `json:"deferred" yaml:"deferred"`
}

// GetDocumentStats returns statistics for a loaded document. The Deferred
// counters are filled in by the parser, not by this function.
func GetDocumentStats(doc *Document) DocumentStats {
	stats := DocumentStats{}
	if doc == nil {
		return stats
	}

	stats.PathCount = len(doc.Paths)
	stats.WebhookCount = len(doc.Webhooks)
	stats.OperationCount = countOperations(doc.Paths) + countOperations(doc.Webhooks)
	if c := doc.Components; c != nil {
		stats.SchemaCount = len(c.Schemas)
		stats.ComponentCount = len(c.Schemas) + len(c.Responses) + len(c.Parameters) +
			len(c.Examples) + len(c.RequestBodies) + len(c.Headers) + len(c.SecuritySchemes) +
			len(c.Links) + len(c.Callbacks) + len(c.PathItems) + len(c.MediaTypes)
	}
	return stats
}

// countOperations counts the operations of every path item in items
func countOperations(items map[string]*PathItem) int {
	count := 0
	for _, pathItem := range items {
		count += len(pathItem.Operations())
	}
	return count
}
