// Package sanitize strips markup and script vectors from free-text form fields
// Each Field pass runs, in order:
// 1 remove < and >
// 2 remove javascript: (any case)
// 3 remove inline handler patterns on\w+= (any case)
// 4 remove script (any case)
// 5 trim surrounding whitespace
// Passes repeat until the output stops changing, so Field is idempotent.
// Strict also drops invalid UTF-8 and control characters and NFC normalizes,
// for values that end up in headers or file names
package sanitize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	angles  = strings.NewReplacer("<", "", ">", "")
	jsProto = regexp.MustCompile(`(?i)javascript:`)
	onEvent = regexp.MustCompile(`(?i)on\w+=`)
	script  = regexp.MustCompile(`(?i)script`)
)

var (
	controlPool = sync.Pool{New: func() any { return runes.Remove(runes.Predicate(isControl)) }}
	nfcPool     = sync.Pool{New: func() any { return norm.NFC }}
)

func isControl(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	return unicode.IsControl(r)
}

// Field returns s with markup and script vectors removed. It never fails;
// the worst case is the empty string
func Field(s string) string { return fixpoint(s, pass) }

// Strict is Field plus dropping invalid UTF-8 and control characters other
// than \n \r \t, with the result NFC normalized
func Strict(s string) string { return fixpoint(s, strictPass) }

// Fields applies Field to every value in place and returns m
func Fields(m map[string]string) map[string]string {
	for k, v := range m {
		m[k] = Field(v)
	}
	return m
}

func fixpoint(s string, step func(string) string) string {
	for {
		next := step(s)
		if next == s {
			return next
		}
		s = next
	}
}

func pass(s string) string {
	if s == "" {
		return s
	}
	s = angles.Replace(s)
	s = jsProto.ReplaceAllString(s, "")
	s = onEvent.ReplaceAllString(s, "")
	s = script.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func strictPass(s string) string {
	if s == "" {
		return s
	}
	s = apply(&controlPool, strings.ToValidUTF8(s, ""))
	return apply(&nfcPool, pass(s))
}

func apply(p *sync.Pool, s string) string {
	t := p.Get().(transform.Transformer)
	out, _, err := transform.String(t, s)
	t.Reset()
	p.Put(t)
	if err != nil {
		return s
	}
	return out
}
