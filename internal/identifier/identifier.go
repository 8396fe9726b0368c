package identifier

import "github.com/google/uuid"

// Generator issues globally unique opaque string ids on demand.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewGenerator returns a UUIDv4-backed Generator.
func NewGenerator() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}
