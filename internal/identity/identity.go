// Package identity derives stable identifiers for cached payloads:
// a content hash for verification and dedup, a schema fingerprint for
// structural compatibility checks, and a storage identifier under a
// policy-selectable addressing scheme.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDPolicy selects how storage identifiers are derived.
type IDPolicy string

const (
	// PolicyContent derives the identifier from the payload hash and
	// ingestion scope, so re-ingesting the same dataset always maps to
	// the same blob file.
	PolicyContent IDPolicy = "content"
	// PolicyRandom generates a fresh UUID per ingestion.
	PolicyRandom IDPolicy = "random"
)

// contentIDLength is the hex prefix of the content digest used as a
// storage id. 32 hex chars (128 bits) is ample for collision resistance
// in a single-host cache while keeping filenames readable.
const contentIDLength = 32

// ParseIDPolicy validates a raw policy value.
func ParseIDPolicy(raw string) (IDPolicy, error) {
	value := IDPolicy(strings.ToLower(strings.TrimSpace(raw)))
	switch value {
	case PolicyContent, PolicyRandom:
		return value, nil
	case "":
		return PolicyContent, nil
	default:
		return "", fmt.Errorf("invalid id policy: %q", raw)
	}
}

// ContentHash returns the hex SHA-256 digest of the payload bytes.
func ContentHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// StorageID derives a storage identifier for a payload under the given
// policy. contentHash must be the value returned by ContentHash for the
// same payload. Under the content policy the id commits to the hash and
// the scope together, so re-ingesting the same dataset is stable while
// identical bytes ingested under a different key or range get their own
// identifier. An empty scope yields the bare digest prefix.
func StorageID(policy IDPolicy, contentHash, scope string) (string, error) {
	switch policy {
	case PolicyContent:
		if len(contentHash) < contentIDLength {
			return "", fmt.Errorf("content hash too short: %q", contentHash)
		}
		if scope == "" {
			return contentHash[:contentIDLength], nil
		}
		sum := sha256.Sum256([]byte(contentHash + "\n" + scope))
		return hex.EncodeToString(sum[:])[:contentIDLength], nil
	case PolicyRandom:
		return uuid.NewString(), nil
	default:
		return "", fmt.Errorf("invalid id policy: %q", policy)
	}
}

// SchemaField is one column or field of a payload's structural shape.
type SchemaField struct {
	Name string
	Type string
}

// SchemaFingerprint returns a deterministic digest of an ordered field
// layout, independent of row content. Identical layouts yield identical
// fingerprints across calls and processes.
func SchemaFingerprint(fields []SchemaField) string {
	if len(fields) == 0 {
		return ""
	}
	h := sha256.New()
	for _, field := range fields {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(field.Name))))
		h.Write([]byte{':'})
		h.Write([]byte(strings.ToLower(strings.TrimSpace(field.Type))))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
