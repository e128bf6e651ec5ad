// Package cursor encodes the opaque page tokens used to list spoiler log runs.
package cursor

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Cursor is the decoded state of a page token. Runs are listed newest
// first, so a page continues below BeforeID.
type Cursor struct {
	BeforeID int64 `json:"before"`
	// FilterHash invalidates the token when the filter changes.
	FilterHash string `json:"filter_hash,omitempty"`
}

// Encode encodes a cursor to an opaque base64 string.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode decodes a token produced by Encode.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("empty token")
	}
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode base64: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal cursor: %w", err)
	}
	if c.BeforeID <= 0 {
		return Cursor{}, fmt.Errorf("invalid cursor position: %d", c.BeforeID)
	}
	return c, nil
}

// HashFilter returns a short hash of filter, or "" for no filter.
func HashFilter(filter string) string {
	if filter == "" {
		return ""
	}
	h := sha256.Sum256([]byte(filter))
	return hex.EncodeToString(h[:8])
}

// ValidateFilterHash fails when filter differs from the one the cursor was
// created with.
func ValidateFilterHash(c Cursor, filter string) error {
	if c.FilterHash != HashFilter(filter) {
		return fmt.Errorf("filter changed since cursor was created")
	}
	return nil
}

// NextPage returns the cursor for the page after the run lastID.
func NextPage(lastID int64, filter string) Cursor {
	return Cursor{BeforeID: lastID, FilterHash: HashFilter(filter)}
}
