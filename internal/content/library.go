package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed sets/*.json
var builtinSets embed.FS

// ErrSetNotFound is returned when a card set ID is unknown.
var ErrSetNotFound = errors.New("card set not found")

// ErrInvalidSet indicates a card set document failed validation.
type ErrInvalidSet struct {
	Source string
	Err    error
}

func (e *ErrInvalidSet) Error() string {
	return fmt.Sprintf("invalid card set %s: %v", e.Source, e.Err)
}

func (e *ErrInvalidSet) Unwrap() error { return e.Err }

// Library holds the card sets available to study, keyed by set ID.
type Library struct {
	sets map[string]*CardSet
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{sets: make(map[string]*CardSet)}
}

// Builtin returns a library holding the card sets shipped with the binary.
func Builtin() (*Library, error) {
	lib := NewLibrary()
	if err := lib.loadFS(builtinSets, "sets"); err != nil {
		return nil, err
	}
	return lib, nil
}

// Load returns the builtin library extended with the sets in dir. An empty
// dir loads only the builtin sets.
func Load(dir string) (*Library, error) {
	lib, err := Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return lib, nil
	}
	if err := lib.LoadDir(dir); err != nil {
		return nil, err
	}
	return lib, nil
}

// LoadDir adds every *.json card set in dir. A set whose ID is already in
// the library replaces the existing one.
func (l *Library) LoadDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("content dir: %w", err)
	}
	return l.loadFS(os.DirFS(dir), ".")
}

func (l *Library) loadFS(fsys fs.FS, root string) error {
	matches, err := fs.Glob(fsys, filepath.ToSlash(filepath.Join(root, "*.json")))
	if err != nil {
		return fmt.Errorf("list card sets: %w", err)
	}
	sort.Strings(matches)

	for _, name := range matches {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := l.Add(raw, name); err != nil {
			return err
		}
	}
	return nil
}

// Add validates a card set document and adds it to the library. source
// names the document in errors.
func (l *Library) Add(raw []byte, source string) error {
	if err := validateDocument(raw); err != nil {
		return &ErrInvalidSet{Source: source, Err: err}
	}

	var cs CardSet
	if err := json.Unmarshal(raw, &cs); err != nil {
		return &ErrInvalidSet{Source: source, Err: err}
	}

	seen := make(map[string]bool, len(cs.Cards))
	for _, c := range cs.Cards {
		if seen[c.ID] {
			return &ErrInvalidSet{Source: source, Err: fmt.Errorf("duplicate card id %q", c.ID)}
		}
		seen[c.ID] = true
	}

	l.sets[cs.ID] = &cs
	return nil
}

// Set returns the card set with the given ID.
func (l *Library) Set(id string) (*CardSet, error) {
	cs, ok := l.sets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSetNotFound, id)
	}
	return cs, nil
}

// Sets returns every card set sorted by ID.
func (l *Library) Sets() []*CardSet {
	out := make([]*CardSet, 0, len(l.sets))
	for _, cs := range l.sets {
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllAnswers returns the answer of every card in the library, sets in ID
// order and cards in set order. Duplicates are kept.
func (l *Library) AllAnswers() []string {
	var answers []string
	for _, cs := range l.Sets() {
		for _, c := range cs.Cards {
			answers = append(answers, c.Answer)
		}
	}
	return answers
}

// Resolve finds a set by exact ID, falling back to a unique ID prefix.
func (l *Library) Resolve(val string) (*CardSet, error) {
	if cs, ok := l.sets[val]; ok {
		return cs, nil
	}

	var matches []*CardSet
	for _, cs := range l.Sets() {
		if strings.HasPrefix(cs.ID, val) {
			matches = append(matches, cs)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrSetNotFound, val)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, cs := range matches {
			ids[i] = cs.ID
		}
		return nil, fmt.Errorf("multiple card sets match %q: %s", val, strings.Join(ids, ", "))
	}
}
