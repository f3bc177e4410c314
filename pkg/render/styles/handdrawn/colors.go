package handdrawn

import "fmt"

const (
	greyMin = 0xd8
	greyMax = 0xf2
)

// greyForID picks a light grey for id, stable across runs.
func greyForID(id string) string {
	v := greyMin + int(hash(id, 0)%uint64(greyMax-greyMin+1))
	return fmt.Sprintf("#%02x%02x%02x", v, v, v)
}

// hash is FNV-1a over s, mixed with seed.
func hash(s string, seed uint64) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset) ^ (seed * prime)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}
