package ports

import "go.trai.ch/loom/internal/core/domain"

// SchemaValidator checks module configuration values against JSON Schema documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=schema_validator.go -destination=mocks/mock_schema_validator.go -package=mocks
type SchemaValidator interface {
	// Validate returns an error describing the first violation of schema by value.
	Validate(schema domain.Document, value any) error
}
