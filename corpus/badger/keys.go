package badger

import (
	"encoding/binary"

	"github.com/poiesic/answerit/core"
)

// Key prefixes for different data types
const (
	corpusRecordPrefix   = "corpus"
	categoryVectorPrefix = "catvec"

	// activeCorpusName keys the single corpus revision the engine serves.
	activeCorpusName = "active"
)

// makeCorpusKey generates a key for a stored corpus by name.
func makeCorpusKey(name string) []byte {
	prefix := corpusRecordPrefix + ":"
	buf := make([]byte, len(prefix)+len(name))
	offset := copy(buf, prefix)
	copy(buf[offset:], name)
	return buf
}

// makeVectorKey generates a composite key for a category vector.
// Format: prefix:corpusHash:tier:category
func makeVectorKey(corpusHash core.ID, tier, category string) []byte {
	partial := makeVectorPrefix(corpusHash, tier)
	buf := make([]byte, len(partial)+len(category))
	offset := copy(buf, partial)
	copy(buf[offset:], category)
	return buf
}

// makeVectorPrefix generates the scan prefix for all category vectors of one
// corpus revision and tier. The hash is written in BigEndian order so the
// prefix is a fixed 8 bytes regardless of value.
func makeVectorPrefix(corpusHash core.ID, tier string) []byte {
	prefix := categoryVectorPrefix + ":"
	totalSize := len(prefix) + 8 + 1 + len(tier) + 1
	buf := make([]byte, totalSize)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(corpusHash))
	offset += 8
	buf[offset] = ':'
	offset++
	offset += copy(buf[offset:], tier)
	buf[offset] = ':'
	return buf
}

// makeHashPrefix generates the scan prefix for every vector of one corpus
// revision across all tiers.
func makeHashPrefix(corpusHash core.ID) []byte {
	prefix := categoryVectorPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(corpusHash))
	return buf
}
