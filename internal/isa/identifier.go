package isa

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MissingIdentifierPrefix marks identifiers generated as placeholders for
// entities that arrived without one. Encoders elide such identifiers so
// they never leak into files.
const MissingIdentifierPrefix = "MISSING_IDENTIFIER_"

var identifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

// CheckValidIdentifier validates an investigation, study or assay
// identifier: non-empty, letters, digits, underscore, dash and space
// only.
func CheckValidIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("identifier is empty")
	}
	if !identifierRegex.MatchString(id) {
		return fmt.Errorf("identifier %q contains characters outside [a-zA-Z0-9_- ]", id)
	}
	return nil
}

// IdentifierSource produces identifiers for entities that arrive without
// one. The default source is NewMissingIdentifier; tests substitute a
// deterministic one.
type IdentifierSource func() string

// NewMissingIdentifier returns a fresh placeholder identifier.
func NewMissingIdentifier() string {
	return MissingIdentifierPrefix + uuid.Must(uuid.NewV7()).String()
}

// IsMissingIdentifier reports whether id is a generated placeholder.
func IsMissingIdentifier(id string) bool {
	return strings.HasPrefix(id, MissingIdentifierPrefix)
}
