package navigator

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and search.
var (
	// ErrNodeNotFound is returned when an id is not part of the graph's node set.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDuplicateNode is returned when two nodes share an id.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrInvalidWeight is returned for negative, NaN or infinite edge weights.
	ErrInvalidWeight = errors.New("edge weight must be a non-negative number")

	// ErrInvalidCategory is returned for a node category outside the fixed set.
	ErrInvalidCategory = errors.New("invalid node category")

	// ErrUnknownAlgorithm is returned when an algorithm selector is not recognised.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// NodeNotFoundError carries the id that could not be resolved.
// errors.Is(err, ErrNodeNotFound) holds for it.
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %q not found", e.ID)
}

func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNodeNotFound
}

func nodeNotFound(id string) error {
	return &NodeNotFoundError{ID: id}
}
