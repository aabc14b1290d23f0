package permission

import "errors"

// Store-facing failures are classified at the gateway and facade boundary
// and surfaced as operator messages; none of them terminate the process.
var (
	// ErrConnection: the store is unreachable. A later request may succeed.
	ErrConnection = errors.New("store unreachable")

	// ErrQuery: a read was malformed or rejected by the store.
	ErrQuery = errors.New("query failed")

	// ErrWrite: a mutation was rejected. Store state is left as it was.
	ErrWrite = errors.New("write failed")

	// ErrValidation: the request was rejected before any store call,
	// typically because no domains were selected.
	ErrValidation = errors.New("invalid selection")
)
