// Package cache provides the narrative cache used in front of the
// content-generation collaborator. Generated prose is keyed by content kind
// plus an input digest, so identical inputs never pay for a second
// collaborator round-trip.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Cache is the narrow caching contract. A miss is (value "", ok false);
// implementations never return errors on reads, a broken backend simply
// behaves as always-miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Key builds a cache key from a content kind and its raw inputs. The inputs
// are digested so arbitrarily large payloads produce fixed-size keys.
func Key(kind string, inputs ...string) string {
	digest := sha256.New()
	for _, input := range inputs {
		digest.Write([]byte(input))
		digest.Write([]byte{0})
	}
	return fmt.Sprintf("wealthgenie:%s:%s", kind, hex.EncodeToString(digest.Sum(nil))[:32])
}
