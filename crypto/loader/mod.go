// Package loader reads the private key of an operator from its storage. The
// key can also be generated on the first use and written for the next ones.
package loader

// Generator returns the bytes of a new private key.
type Generator interface {
	Generate() ([]byte, error)
}

// Loader gives access to a stored private key.
type Loader interface {
	// Load returns the stored key.
	Load() ([]byte, error)

	// LoadOrCreate returns the stored key, or stores and returns a key of the
	// generator when there is none.
	LoadOrCreate(Generator) ([]byte, error)
}
