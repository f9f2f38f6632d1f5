// Package identity canonicalizes the raw contact facts guessed from a resume
// into comparable keys. Every dedup decision downstream works on these
// normalized forms, never on the raw strings.
package identity

import (
	"sort"
	"strings"
)

// NormalizeEmail trims and lowercases. No format validation beyond non-empty;
// the extractor already only emits things that look like addresses.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizePhone reduces a phone string to a +<countrycode><digits> form.
//
// This is a lossy heuristic, not E.164 validation: 10 digits are assumed to be
// a US/CA number and get a "1" country code, 11 digits starting with 1 are
// kept, and anything else is passed through with a bare "+" prefix.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case digits == "":
		return ""
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits
	default:
		return "+" + digits
	}
}

// NormalizeName collapses internal whitespace and trims.
func NormalizeName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// NormalizeSkills lowercases, trims, drops empties and deduplicates. Order is
// not significant.
func NormalizeSkills(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Dedup key prefixes, one per uniqueness dimension.
const (
	KeyPrefixEmail = "email:"
	KeyPrefixPhone = "phone:"
	KeyPrefixHash  = "hash:"
)

// DedupKeys derives the set of identity keys that must be unique for one
// ingestion attempt: normalized email, normalized phone and the resume content
// hash, each tagged with its dimension. Empty facts are skipped.
//
// The result is sorted so that attempts holding overlapping key sets always
// acquire the exclusion lock in the same order.
func DedupKeys(email, phone, contentHash string) []string {
	keys := make([]string, 0, 3)
	if email != "" {
		keys = append(keys, KeyPrefixEmail+email)
	}
	if phone != "" {
		keys = append(keys, KeyPrefixPhone+phone)
	}
	if contentHash != "" {
		keys = append(keys, KeyPrefixHash+contentHash)
	}
	sort.Strings(keys)
	return keys
}

// KeyDimension reports which identity dimension a dedup key belongs to
// ("email", "phone" or "hash"). Used for user-facing duplicate messages.
func KeyDimension(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
