package placeholder

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Matcher recognises placeholder tokens for one delimiter pair. A Matcher is
// immutable and safe for concurrent use.
type Matcher struct {
	delims Delimiters
	key    string
	re     *regexp.Regexp
}

// Match is a single placeholder occurrence. Start and End are byte offsets of
// the whole token, delimiters included.
type Match struct {
	Key   string
	Raw   string
	Start int
	End   int
}

// space matches the same runes unicode.IsSpace (and so strings.TrimSpace)
// accepts, so a key trimmed by FindAll is always found again by ForKey.
const space = `[\t\n\v\f\r \x{85}\p{Z}]*`

// Compile builds the general matcher for open/close. The key is captured
// non-greedily and may not contain the first character of the close
// delimiter; surrounding whitespace inside the delimiters is tolerated.
func Compile(open, close string) (*Matcher, error) {
	d := Delimiters{Open: open, Close: close}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	first, _ := utf8.DecodeRuneInString(close)
	pattern := regexp.QuoteMeta(open) +
		space + `([^` + regexp.QuoteMeta(string(first)) + `]+?)` + space +
		regexp.QuoteMeta(close)

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("placeholder: compile %q: %w", d.String(), err)
	}
	return &Matcher{delims: d, re: re}, nil
}

// ForKey builds a matcher for one literal key, so substituting that key
// cannot consume another key's delimiters.
func ForKey(open, close, key string) (*Matcher, error) {
	d := Delimiters{Open: open, Close: close}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	pattern := regexp.QuoteMeta(open) + space + regexp.QuoteMeta(key) + space + regexp.QuoteMeta(close)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("placeholder: compile key %q: %w", key, err)
	}
	return &Matcher{delims: d, key: key, re: re}, nil
}

// MustCompile panics when Compile fails. Useful for package-level matchers.
func MustCompile(open, close string) *Matcher {
	m, err := Compile(open, close)
	if err != nil {
		panic(err)
	}
	return m
}

// Delimiters returns the pair the matcher was built for.
func (m *Matcher) Delimiters() Delimiters {
	return m.delims
}

// Key returns the literal key of a ForKey matcher, or "" for a general one.
func (m *Matcher) Key() string {
	return m.key
}

// String returns the generated pattern.
func (m *Matcher) String() string {
	return m.re.String()
}

// FindAll returns every non-overlapping occurrence in s. Tokens whose key is
// blank after trimming are skipped.
func (m *Matcher) FindAll(s string) []Match {
	if s == "" {
		return nil
	}
	locs := m.re.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return nil
	}

	out := make([]Match, 0, len(locs))
	for _, loc := range locs {
		key := m.key
		if len(loc) >= 4 && loc[2] >= 0 {
			key = strings.TrimSpace(s[loc[2]:loc[3]])
		}
		if key == "" {
			continue
		}
		out = append(out, Match{
			Key:   key,
			Raw:   s[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return out
}

// Keys returns the keys found in s in order of appearance, duplicates
// included.
func (m *Matcher) Keys(s string) []string {
	matches := m.FindAll(s)
	if len(matches) == 0 {
		return nil
	}
	keys := make([]string, len(matches))
	for i, match := range matches {
		keys[i] = match.Key
	}
	return keys
}

// MatchString reports whether s contains at least one token.
func (m *Matcher) MatchString(s string) bool {
	return len(m.FindAll(s)) > 0
}

// ReplaceAll substitutes value for every token in s. The value is inserted
// literally; "$1" style expansions are not interpreted.
func (m *Matcher) ReplaceAll(s, value string) string {
	return m.re.ReplaceAllLiteralString(s, value)
}
