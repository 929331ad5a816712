package taxonomy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownKey is returned when an identifier resolves to nothing in
// the vocabulary snapshot. Callers recover by correcting the input;
// a batch sweep fails only the single pair that carried the key.
var ErrUnknownKey = errors.New("unknown taxonomy key")

type Kind string

const (
	KindSkill    Kind = "skill"
	KindValue    Kind = "value"
	KindCause    Kind = "cause"
	KindLanguage Kind = "language"
	KindCurrency Kind = "currency"
)

type Item struct {
	Key      string
	Label    string
	Category string
}

// Snapshot is an immutable, versioned view of the controlled
// vocabularies. Scoring records the version it used so historical
// explanations stay reproducible after vocabulary edits.
type Snapshot struct {
	version      int
	vocabularies map[Kind]map[string]Item
}

func NewSnapshot(version int, items map[Kind][]Item) *Snapshot {
	vocabularies := make(map[Kind]map[string]Item, len(items))
	for kind, list := range items {
		byKey := make(map[string]Item, len(list))
		for _, item := range list {
			byKey[item.Key] = item
		}
		vocabularies[kind] = byKey
	}
	return &Snapshot{version: version, vocabularies: vocabularies}
}

func (s *Snapshot) Version() int {
	return s.version
}

// Resolve normalizes a raw identifier and returns its canonical key.
func (s *Snapshot) Resolve(kind Kind, raw string) (string, error) {
	key := Normalize(raw)
	if _, ok := s.vocabularies[kind][key]; !ok {
		return "", errors.Wrap(ErrUnknownKey, fmt.Sprintf("%s %q", kind, raw))
	}
	return key, nil
}

// ResolveAll resolves every identifier or fails on the first unknown.
func (s *Snapshot) ResolveAll(kind Kind, raws []string) ([]string, error) {
	resolved := make([]string, len(raws))
	for i, raw := range raws {
		key, err := s.Resolve(kind, raw)
		if err != nil {
			return nil, err
		}
		resolved[i] = key
	}
	return resolved, nil
}

func (s *Snapshot) Label(kind Kind, key string) string {
	if item, ok := s.vocabularies[kind][key]; ok {
		return item.Label
	}
	return key
}

var nonKeyChars = regexp.MustCompile(`[^a-z0-9-]+`)

// Normalize lowercases an identifier and collapses everything outside
// [a-z0-9-] into single hyphens.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = nonKeyChars.ReplaceAllString(key, "-")
	return strings.Trim(key, "-")
}
