// Package fieldpath resolves RFC 6901 JSON pointers against a task's
// decoded field tree (the map[string]any shape produced by encoding/json).
package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
)

// FailureKind classifies why a pointer did not resolve.
type FailureKind int

const (
	// KindBadSyntax means the pointer itself is malformed (e.g. missing
	// the leading slash).
	KindBadSyntax FailureKind = iota
	// KindMissing means a reference token named a key or index that does
	// not exist in the tree.
	KindMissing
	// KindNotScalar means the pointer resolved, but to an object, array
	// or null rather than a scalar value.
	KindNotScalar
)

// String returns a short human-readable label for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case KindBadSyntax:
		return "bad pointer syntax"
	case KindMissing:
		return "path not found"
	case KindNotScalar:
		return "not a scalar value"
	default:
		return "unknown failure"
	}
}

// ResolveError describes a failed pointer resolution. It is an expected,
// per-pointer condition, not a program fault.
type ResolveError struct {
	Pointer string
	Kind    FailureKind
	Detail  string
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("pointer %q: %s", e.Pointer, e.Kind)
	}
	return fmt.Sprintf("pointer %q: %s (%s)", e.Pointer, e.Kind, e.Detail)
}

// Resolve walks the given JSON pointer through root and returns the scalar
// it points at, rendered as a string. Strings are returned as-is, numbers
// and booleans are formatted. Objects, arrays and null are not scalars and
// yield a KindNotScalar error.
func Resolve(root any, pointer string) (string, error) {
	node, err := walk(root, pointer)
	if err != nil {
		return "", err
	}
	return scalarString(node, pointer)
}

// walk returns the node the pointer refers to, without any scalar check.
func walk(root any, pointer string) (any, error) {
	if pointer == "" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, &ResolveError{Pointer: pointer, Kind: KindBadSyntax, Detail: "must start with '/'"}
	}

	node := root
	for _, token := range strings.Split(pointer[1:], "/") {
		token = unescape(token)

		switch current := node.(type) {
		case map[string]any:
			child, ok := current[token]
			if !ok {
				return nil, &ResolveError{Pointer: pointer, Kind: KindMissing, Detail: fmt.Sprintf("no member %q", token)}
			}
			node = child
		case []any:
			idx, err := arrayIndex(token)
			if err != nil {
				return nil, &ResolveError{Pointer: pointer, Kind: KindBadSyntax, Detail: err.Error()}
			}
			if idx < 0 || idx >= len(current) {
				return nil, &ResolveError{Pointer: pointer, Kind: KindMissing, Detail: fmt.Sprintf("index %d out of range", idx)}
			}
			node = current[idx]
		default:
			// The pointer has more tokens, but we are standing on a
			// scalar or null.
			return nil, &ResolveError{Pointer: pointer, Kind: KindMissing, Detail: fmt.Sprintf("cannot descend into %T with token %q", node, token)}
		}
	}

	return node, nil
}

// scalarString renders a resolved node as a string, or fails when the node
// is not a scalar.
func scalarString(node any, pointer string) (string, error) {
	switch v := node.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		// encoding/json decodes all JSON numbers as float64.
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case nil:
		return "", &ResolveError{Pointer: pointer, Kind: KindNotScalar, Detail: "value is null"}
	default:
		return "", &ResolveError{Pointer: pointer, Kind: KindNotScalar, Detail: fmt.Sprintf("value is %T", node)}
	}
}

// unescape applies the RFC 6901 escape sequences: ~1 is '/', ~0 is '~'.
// Order matters: ~1 must be replaced before ~0.
func unescape(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// arrayIndex parses an array reference token. RFC 6901 forbids leading
// zeros, and the end-of-array marker "-" never refers to an existing
// element so it is rejected here.
func arrayIndex(token string) (int, error) {
	if token == "-" {
		return 0, fmt.Errorf("token \"-\" does not reference an existing element")
	}
	if len(token) > 1 && token[0] == '0' {
		return 0, fmt.Errorf("array index %q has leading zeros", token)
	}
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("array index %q is not a number", token)
	}
	return idx, nil
}
