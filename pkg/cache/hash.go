package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Frames, configs and label lists
// all encode deterministically, which is what cache keys rely on.
// Unencodable values hash like an empty input.
func HashJSON(v any) string {
	data, _ := json.Marshal(v)
	return Hash(data)
}

// hashKey builds "prefix:" followed by the hash of parts.
func hashKey(prefix string, parts ...any) string {
	return prefix + ":" + HashJSON(parts)
}
