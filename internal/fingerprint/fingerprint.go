// Package fingerprint derives stable content identifiers for cards.
// The fingerprint covers only the front and back text, so moving a card
// between decks or editing its notes never resets learning progress.
package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/zlatanpham/ankigo/internal/domain"
)

// Normalize returns the canonical text the fingerprint is computed
// over: front and back, each trimmed, lowercased and with line endings
// normalized, joined by a newline.
func Normalize(card domain.Card) string {
	return normalizePart(card.Front) + "\n" + normalizePart(card.Back)
}

// Sum returns the card's SHA-256 content fingerprint as a hex string.
func Sum(card domain.Card) string {
	digest := sha256.Sum256([]byte(Normalize(card)))
	return fmt.Sprintf("%x", digest)
}

func normalizePart(part string) string {
	p := strings.ToLower(part)
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\r\n", "\n")
	return p
}
