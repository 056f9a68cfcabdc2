package ports

import "go.trai.ch/loom/internal/core/domain"

// DocumentDecoder turns fetched text into a document. The location is used to pick the format.
//
//go:generate go run go.uber.org/mock/mockgen -source=decoder.go -destination=mocks/mock_decoder.go -package=mocks
type DocumentDecoder interface {
	Decode(location, text string) (domain.Document, error)
}
