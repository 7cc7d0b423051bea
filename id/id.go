// Package id defines TypeID-based identity types for costing entities.
//
// Line items use a prefix-qualified, K-sortable (UUIDv7-based) identifier in
// the format "item_suffix". Sheets written by earlier versions of the costing
// sheet carry numeric timestamp identifiers; those are kept verbatim as legacy
// IDs so that existing payloads keep their identity.
package id

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for costing entity types.
const (
	PrefixItem Prefix = "item" // Costing line item
)

// ID is the primary identifier type for costing entities.
// It wraps either a TypeID or a legacy numeric identifier.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner  typeid.TypeID
	legacy string
	valid  bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Legacy wraps a numeric identifier such as a millisecond timestamp.
func Legacy(digits string) (ID, error) {
	if !isDigits(digits) {
		return Nil, fmt.Errorf("id: legacy %q: not a decimal integer", digits)
	}

	return ID{legacy: digits, valid: true}, nil
}

// Parse parses a TypeID string (e.g., "item_01h2xcejqtf2nbrexx3vqjhp41")
// or a legacy numeric identifier into an ID.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	if isDigits(s) {
		return ID{legacy: s, valid: true}, nil
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value. Legacy identifiers carry no prefix and are
// accepted for any expected prefix.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.IsLegacy() {
		return parsed, nil
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// ItemID is a type-safe identifier for line items (prefix: "item").
type ItemID = ID

// NewItemID generates a new unique line item ID.
func NewItemID() ID { return New(PrefixItem) }

// ParseItemID parses a string and validates the "item" prefix.
func ParseItemID(s string) (ID, error) { return ParseWithPrefix(s, PrefixItem) }

// String returns the full TypeID string representation (prefix_suffix),
// or the digits of a legacy ID. Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}
	if i.legacy != "" {
		return i.legacy
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID. Legacy IDs have none.
func (i ID) Prefix() Prefix {
	if !i.valid || i.legacy != "" {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// IsLegacy reports whether this ID is a numeric identifier.
func (i ID) IsLegacy() bool {
	return i.valid && i.legacy != ""
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// Value implements driver.Valuer for database storage.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return i.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	if src == nil {
		*i = Nil

		return nil
	}

	switch v := src.(type) {
	case string:
		return i.UnmarshalText([]byte(v))
	case []byte:
		return i.UnmarshalText(v)
	case int64:
		return i.UnmarshalText([]byte(fmt.Sprintf("%d", v)))
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	return strings.Trim(s, "0123456789") == ""
}
