package parser

// DocumentStats contains statistical information about an OAS document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	WebhookCount   int // Number of webhooks defined (OAS 3.1+)
	OperationCount int // Total number of operations across paths and webhooks
	SchemaCount    int // Number of schemas/definitions
	ComponentCount int // Total number of reusable objects
	ReferenceCount int // Number of "$ref" occurrences
}

// Stats returns statistics for the document
func (doc *Document) Stats() DocumentStats {
	stats := DocumentStats{
		PathCount:      doc.Paths.Len(),
		WebhookCount:   doc.Webhooks.Len(),
		ComponentCount: doc.Components.Count(),
		ReferenceCount: len(doc.GetAllReferences()),
	}
	for range doc.AllOperations() {
		stats.OperationCount++
	}
	if doc.Components != nil {
		stats.SchemaCount = len(doc.Components.Schemas)
	}
	return stats
}
