package port

// Cache namespaces. Each namespace is an independent append-only
// key-value space; keys are deterministic content hashes, so values are
// pure functions of their key and last-write-wins is safe.
const (
	NamespaceGeometry    = "geometry"
	NamespaceDescriptors = "descriptors"
	NamespaceShingles    = "shingles"
)

// Store is a persistent key-value cache shared by concurrent workers.
type Store interface {
	Get(namespace, key string) ([]byte, bool, error)

	Put(namespace, key string, value []byte) error

	// Count returns the number of entries in a namespace.
	Count(namespace string) (int, error)

	// Clear removes every entry of a namespace.
	Clear(namespace string) error

	Close() error
}
