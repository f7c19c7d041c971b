// Package meta handles the free-form key/value metadata attached to user
// records. Metadata travels as an ordered list of pairs and is only flattened
// to the "k1=v1;k2=v2" form when it is written to storage.
package meta

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
)

const (
	pairSeparator  = ";"
	valueSeparator = "="
)

// Pair is a single sanitized metadata entry.
type Pair struct {
	Key   string
	Value string
}

// Pairs keeps metadata entries in the order they were supplied.
type Pairs []Pair

// Sanitize drops every rune outside [A-Za-z0-9!?:,'" ].
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if allowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '!', '?', ':', ',', '\'', '"', ' ':
		return true
	}
	return false
}

// Parse reads a "k1=v1;k2=v2" string. Blank segments are skipped and a segment
// without "=" becomes a key with an empty value. Keys and values are sanitized
// independently and trimmed so that Parse(p.Encode()) returns p unchanged.
func Parse(raw string) Pairs {
	pairs := split(raw)
	for i := range pairs {
		pairs[i].Key = strings.TrimSpace(Sanitize(pairs[i].Key))
		pairs[i].Value = strings.TrimSpace(Sanitize(pairs[i].Value))
	}
	return pairs
}

// FromMap sanitizes a decoded JSON object. Keys are sorted so the stored form
// does not depend on map iteration order.
func FromMap(values map[string]any) Pairs {
	if len(values) == 0 {
		return Pairs{}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make(Pairs, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{
			Key:   strings.TrimSpace(Sanitize(k)),
			Value: strings.TrimSpace(Sanitize(stringify(values[k]))),
		})
	}
	return pairs
}

// Normalize is Parse followed by Encode.
func Normalize(raw string) string {
	return Parse(raw).Encode()
}

// Encode joins the pairs with ";" and no trailing separator.
func (p Pairs) Encode() string {
	parts := make([]string, 0, len(p))
	for _, pair := range p {
		parts = append(parts, pair.Key+valueSeparator+pair.Value)
	}
	return strings.Join(parts, pairSeparator)
}

// Map flattens the pairs; a repeated key keeps its last value.
func (p Pairs) Map() map[string]string {
	out := make(map[string]string, len(p))
	for _, pair := range p {
		out[pair.Key] = pair.Value
	}
	return out
}

// Value stores pairs in their flat form.
func (p Pairs) Value() (driver.Value, error) {
	return p.Encode(), nil
}

// Scan reads the flat form back. Stored metadata was sanitized on the way in
// and is not sanitized again.
func (p *Pairs) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = Pairs{}
	case string:
		*p = split(v)
	case []byte:
		*p = split(string(v))
	default:
		return fmt.Errorf("meta: cannot scan %T", src)
	}
	return nil
}

func split(raw string) Pairs {
	pairs := Pairs{}
	for _, segment := range strings.Split(raw, pairSeparator) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, valueSeparator)
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
