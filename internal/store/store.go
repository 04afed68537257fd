// Package store provides persistence for named spindle rule books.
package store

// Book is the serializable form of a rule book: rule name to candidate
// strings.
type Book map[string][]string

// Store is the interface for rule-book persistence.
type Store interface {
	// Get retrieves a rule book by name. Returns nil if not found.
	Get(name string) (Book, error)
	// Put stores a rule book by name, overwriting if it exists.
	Put(name string, book Book) error
	// Delete removes a rule book by name.
	Delete(name string) error
	// List returns the stored book names in sorted order.
	List() ([]string, error)
	// Close releases resources.
	Close() error
}
