package extract

import "github.com/goliatone/go-pagefill/pkg/placeholder"

// SourceText marks an occurrence found in text or element content.
const SourceText = "text"

// SourceAttrPrefix prefixes occurrences found in attribute values, e.g.
// "attr:href".
const SourceAttrPrefix = "attr:"

// Occurrence is a single placeholder hit. Owner is empty when neither the
// node nor any ancestor declared an identifier.
type Occurrence struct {
	Key    string `json:"key"`
	Owner  string `json:"owner,omitempty"`
	Source string `json:"source"`
	Path   []int  `json:"path"`
}

// Result is the outcome of one extraction.
//
// Fields maps an owning identifier to the distinct keys found under it, in
// discovery order. The same key may appear under several owners since one
// placeholder can be repeated across the document. Values holds every
// distinct key initialised to "", and Keys lists those keys in discovery
// order.
type Result struct {
	Delimiters  placeholder.Delimiters `json:"brackets"`
	Fields      map[string][]string    `json:"fields"`
	Values      map[string]string      `json:"values"`
	Keys        []string               `json:"keys"`
	Occurrences []Occurrence           `json:"occurrences,omitempty"`
}

// KeysFor returns the keys attributed to owner.
func (r Result) KeysFor(owner string) []string {
	return r.Fields[owner]
}

// Count returns how many times key occurs in the tree.
func (r Result) Count(key string) int {
	n := 0
	for _, occ := range r.Occurrences {
		if occ.Key == key {
			n++
		}
	}
	return n
}

// accumulator is threaded through one walk and never shared.
type accumulator struct {
	fields      map[string][]string
	seenField   map[string]map[string]struct{}
	values      map[string]string
	keys        []string
	occurrences []Occurrence
}

func newAccumulator() *accumulator {
	return &accumulator{
		fields:    make(map[string][]string),
		seenField: make(map[string]map[string]struct{}),
		values:    make(map[string]string),
	}
}

func (a *accumulator) add(key, owner, source string, path []int) {
	if _, ok := a.values[key]; !ok {
		a.values[key] = ""
		a.keys = append(a.keys, key)
	}

	a.occurrences = append(a.occurrences, Occurrence{
		Key:    key,
		Owner:  owner,
		Source: source,
		Path:   append([]int(nil), path...),
	})

	if owner == "" {
		return
	}
	seen, ok := a.seenField[owner]
	if !ok {
		seen = make(map[string]struct{})
		a.seenField[owner] = seen
	}
	if _, dup := seen[key]; dup {
		return
	}
	seen[key] = struct{}{}
	a.fields[owner] = append(a.fields[owner], key)
}

func (a *accumulator) result(d placeholder.Delimiters) Result {
	return Result{
		Delimiters:  d,
		Fields:      a.fields,
		Values:      a.values,
		Keys:        a.keys,
		Occurrences: a.occurrences,
	}
}
