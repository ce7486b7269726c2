// Package proto implements the line-oriented text formats spoken over
// the wheel's ctl file and used to list entries.
//
// Action format (one per line):
//
//	<kind> <k>=<v> <k>=<v> ...
//
// Entry format (one per line, in list order):
//
//	entry id=<id> included=<0|1> label=<label>
//
// String escaping: values containing spaces, tabs, newlines, quotes,
// equals signs, or backslashes are quoted with double quotes. Inside
// quotes, \n, \t, \\, and \" are recognized escapes.
package proto

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/elizafairlady/go-wheel/entry"
)

// ErrEmptyAction is returned for a blank action line.
var ErrEmptyAction = errors.New("proto: empty action")

// Action is a semantic command, such as "add label=Alice".
type Action struct {
	Kind string
	KVs  map[string]string
}

// Get returns the value for k, or "".
func (a *Action) Get(k string) string {
	return a.KVs[k]
}

// Int parses the value for k as an integer.
func (a *Action) Int(k string) (int, error) {
	v, ok := a.KVs[k]
	if !ok {
		return 0, fmt.Errorf("proto: %s: missing %s", a.Kind, k)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("proto: %s: bad %s: %w", a.Kind, k, err)
	}
	return n, nil
}

// --- Escaping ---

var (
	escaper   = strings.NewReplacer("\\", `\\`, "\"", `\"`, "\n", `\n`, "\t", `\t`)
	unescaper = strings.NewReplacer(`\\`, "\\", `\"`, "\"", `\n`, "\n", `\t`, "\t")
)

// EscapeValue encodes a string for the protocol, quoting if necessary.
func EscapeValue(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\\\"=") {
		return s
	}
	return `"` + escaper.Replace(s) + `"`
}

// UnescapeValue decodes a possibly-quoted protocol string.
func UnescapeValue(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	return unescaper.Replace(s[1 : len(s)-1])
}

// --- KV parsing ---

// FormatKV formats a key=value pair with proper escaping.
func FormatKV(k, v string) string {
	return k + "=" + EscapeValue(v)
}

// ParseKV parses a key=value token. Returns key, value, ok.
func ParseKV(token string) (string, string, bool) {
	k, v, ok := strings.Cut(token, "=")
	if !ok {
		return "", "", false
	}
	return k, UnescapeValue(v), true
}

// --- Tokenization ---

// Tokenize splits a line into blank-separated tokens. A double-quoted
// run, alone or as the value of k="v", stays inside one token even if
// it contains blanks.
func Tokenize(line string) []string {
	var tokens []string
	start := -1
	quoted := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == '\\' && i+1 < len(line):
			i++
		case c == '"':
			quoted = !quoted
			if start < 0 {
				start = i
			}
		case !quoted && (c == ' ' || c == '\t'):
			if start >= 0 {
				tokens = append(tokens, line[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

// --- Action serialization ---

// SerializeAction encodes an action to the text protocol format.
func SerializeAction(a *Action) string {
	var b strings.Builder
	b.WriteString(a.Kind)
	for _, k := range slices.Sorted(maps.Keys(a.KVs)) {
		b.WriteByte(' ')
		b.WriteString(FormatKV(k, a.KVs[k]))
	}
	return b.String()
}

// ParseAction decodes an action from the text protocol format.
func ParseAction(line string) (*Action, error) {
	tokens := Tokenize(strings.TrimSpace(line))
	if len(tokens) == 0 {
		return nil, ErrEmptyAction
	}
	a := &Action{
		Kind: tokens[0],
		KVs:  make(map[string]string),
	}
	for _, kv := range tokens[1:] {
		k, v, ok := ParseKV(kv)
		if ok {
			a.KVs[k] = v
		}
	}
	return a, nil
}

// --- Entry serialization ---

// FormatEntry encodes one entry as an entry line, without newline.
func FormatEntry(e entry.Entry) string {
	inc := "0"
	if e.Included {
		inc = "1"
	}
	return "entry " + FormatKV("id", e.ID) + " " + FormatKV("included", inc) + " " + FormatKV("label", e.Label)
}

// SerializeEntries encodes l, one line per entry.
func SerializeEntries(l entry.List) string {
	var b strings.Builder
	for _, e := range l {
		b.WriteString(FormatEntry(e))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseEntry decodes one entry line.
func ParseEntry(line string) (entry.Entry, error) {
	a, err := ParseAction(line)
	if err != nil {
		return entry.Entry{}, err
	}
	if a.Kind != "entry" {
		return entry.Entry{}, fmt.Errorf("proto: want entry, got %q", a.Kind)
	}
	e := entry.Entry{ID: a.Get("id"), Label: a.Get("label")}
	if e.ID == "" {
		return entry.Entry{}, fmt.Errorf("proto: entry missing id")
	}
	switch a.Get("included") {
	case "1":
		e.Included = true
	case "0", "":
	default:
		return entry.Entry{}, fmt.Errorf("proto: entry %s: bad included %q", e.ID, a.Get("included"))
	}
	return e, nil
}

// ParseEntries decodes the entry lines in text, skipping blank lines.
func ParseEntries(text string) (entry.List, error) {
	l := entry.List{}
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := ParseEntry(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		l = append(l, e)
	}
	return l, nil
}
