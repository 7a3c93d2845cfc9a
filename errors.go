package storefront

import "errors"

// Sentinel errors for tree and registry operations.
var (
	ErrNodeNotFound = errors.New("storefront: node not found")
	ErrRootDelete   = errors.New("storefront: cannot delete root node")
	ErrInvalidMove  = errors.New("storefront: cannot move node into its own subtree")
	ErrNilTree      = errors.New("storefront: nil document tree")
)

// IsNotFound checks if err indicates a missing node.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
