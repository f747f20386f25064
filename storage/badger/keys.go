package badger

import "fmt"

// Key prefixes for different data types
const (
	documentPrefix     = "doc"
	documentInfoSuffix = "info"
)

// makeDocumentKey generates the key holding a collection document.
// Format: doc:name
func makeDocumentKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", documentPrefix, name))
}

// makeDocumentInfoKey generates the key holding a document's revision info.
// Format: doc:name:info
func makeDocumentInfoKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", documentPrefix, name, documentInfoSuffix))
}
