// Package ident generates the short prefixed identifiers used for domain
// objects, e.g. "vc_9f8a62d41c03".
package ident

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const suffixLen = 12

// New returns an identifier of the form "<prefix>_<12 hex chars>".
func New(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s_%s", prefix, hex[:suffixLen])
}
