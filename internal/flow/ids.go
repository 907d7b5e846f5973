package flow

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// idAlphabet matches the URL-safe set the builder uses for node ids.
const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const idLength = 10

// NewNodeID returns a fresh node id, unique within any practical graph.
func NewNodeID() (string, error) {
	id, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("node id: %w", err)
	}
	return "n-" + id, nil
}

// NewEdgeID returns a fresh edge id.
func NewEdgeID() (string, error) {
	id, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("edge id: %w", err)
	}
	return "e-" + id, nil
}
