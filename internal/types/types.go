package types

import (
	"fmt"
	"strings"
)

// Type enumerates the closed set of value types of the language.
// Types are plain comparable values; two types are equal iff they are ==.
type Type uint8

const (
	// Generic is the placeholder type of an unannotated parameter or return.
	Generic Type = iota
	Null
	Text
	Bool
	Num
)

// String returns the type name as written in source.
func (t Type) String() string {
	switch t {
	case Generic:
		return "Generic"
	case Null:
		return "Null"
	case Text:
		return "Text"
	case Bool:
		return "Bool"
	case Num:
		return "Num"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// IsGeneric reports whether t is the generic placeholder.
func (t Type) IsGeneric() bool { return t == Generic }

// Parse converts a source type name into a Type.
func Parse(name string) (Type, bool) {
	switch name {
	case "Null":
		return Null, true
	case "Text":
		return Text, true
	case "Bool":
		return Bool, true
	case "Num":
		return Num, true
	default:
		return Generic, false
	}
}

// Equal reports whether two type sequences are positionally identical.
func Equal(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FullyTyped reports whether none of the types is Generic.
func FullyTyped(ts []Type) bool {
	for _, t := range ts {
		if t == Generic {
			return false
		}
	}
	return true
}

// Key builds a stable map key for a type sequence.
// Go maps cannot use slices as keys, so instance lookups go through this string.
func Key(ts []Type) string {
	if len(ts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range ts {
		if i > 0 {
			b.WriteByte('#')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Labels renders a type sequence like "(Num, Text)".
func Labels(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// MarshalText renders the type by name in YAML and cache files.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a type name produced by MarshalText.
func (t *Type) UnmarshalText(b []byte) error {
	if string(b) == "Generic" {
		*t = Generic
		return nil
	}
	v, ok := Parse(string(b))
	if !ok {
		return fmt.Errorf("unknown type %q", string(b))
	}
	*t = v
	return nil
}
