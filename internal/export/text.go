package export

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

// CanonicalText returns the text a catalog hash is computed over: one line
// per topic plus one per keyword entry, in catalog order.
func CanonicalText(cat *catalog.Catalog) string {
	var b strings.Builder
	for _, t := range cat.Topics() {
		b.WriteString("topic: " + strings.TrimSpace(t.ID))
		b.WriteString(" | " + strings.TrimSpace(t.Title))
		b.WriteString(" | " + strings.TrimSpace(t.Subtitle))
		b.WriteString(" | " + strings.Join(t.Keywords, ","))
		b.WriteByte('\n')
	}
	for _, k := range cat.Keywords() {
		b.WriteString("keyword: " + k.Keyword + " -> " + strings.Join(k.Topics, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// TextHash returns a sha256 hash (hex) of text.
func TextHash(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
