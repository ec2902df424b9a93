// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package identity

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

// Placeholders used when a component is missing.
const (
	PlaceholderSlug   = "vehicle"
	PlaceholderPrefix = "0000"

	idPrefixLen = 4
	saltLen     = 6
)

// Resolve builds the identity of a vehicle. It is pure: identical inputs
// always give the same key, and case or spacing variants of profileName
// give the same slug.
func Resolve(profileName, id, email string) models.VehicleIdentity {
	return models.VehicleIdentity{
		Slug:     Slugify(profileName),
		IDPrefix: idPrefix(id),
		Salt:     EmailSalt(email),
	}
}

// Slugify folds s to [a-z0-9-]. Accents are decomposed and dropped, so
// "Véhicule Été" becomes "vehicule-ete".
func Slugify(s string) string {
	folded, _, err := transform.String(stripMarks(), s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	dash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return PlaceholderSlug
	}
	return b.String()
}

// stripMarks returns a fresh transformer; transform.Chain is stateful and
// not safe for concurrent use.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func idPrefix(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return PlaceholderPrefix
	}
	r := []rune(id)
	if len(r) > idPrefixLen {
		r = r[:idPrefixLen]
	}
	return string(r)
}

// EmailSalt returns the first six hex digits of FNV-1a 32 over the
// normalized email, or "" when email is blank.
func EmailSalt(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return fmt.Sprintf("%08x", h.Sum32())[:saltLen]
}
