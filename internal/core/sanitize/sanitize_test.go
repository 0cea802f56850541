package sanitize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "Jane Doe", "Jane Doe"},
		{"trim", "  hello world \n", "hello world"},
		{"angles", "<b>bold</b>", "bbold/b"},
		{"script tag", "<script>alert(1)</script>", "alert(1)/"},
		{"javascript proto any case", "JaVaScRiPt:alert(1)", "alert(1)"},
		{"inline handler", `img onerror=alert(1)`, "img alert(1)"},
		{"handler any case", `x ONCLICK=go()`, "x go()"},
		{"nested script", "scrscriptipt", ""},
		{"nested proto", "javajavascript:script:x", "java:x"},
		{"keeps newlines in message", "line one\nline two", "line one\nline two"},
		{"keeps controls", "a\x00b", "a\x00b"},
		{"keeps decomposed accents", "Cafe\u0301", "Cafe\u0301"},
		{"keeps kelvin sign", "5 \u212a", "5 \u212a"},
		{"unicode letters survive", "Zoë Łukasz", "Zoë Łukasz"},
		{"only markup", " <> ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Field(tc.in); got != tc.want {
				t.Fatalf("Field(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStrict(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, in, want string
	}{
		{"markup rules still apply", " <script>x</script> ", "x/"},
		{"drops controls", "a\x00b\x07c\x7fd", "abcd"},
		{"keeps tabs and newlines", "a\tb\nc", "a\tb\nc"},
		{"drops invalid utf8", "ok\xffok", "okok"},
		{"nfc composes", "Cafe\u0301", "Caf\u00e9"},
		{"control hides a vector", "scr\x00ipt", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Strict(tc.in); got != tc.want {
				t.Fatalf("Strict(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestField_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"scrscriptipt", "<<script>>", "oonclick=nclick=", "javascript:javascript:",
		"  \t<scr<script>ipt>  ", "on on=x=", "SCRIPTscript", "Café <b>",
	}
	for _, in := range inputs {
		for name, fn := range map[string]func(string) string{"Field": Field, "Strict": Strict} {
			once := fn(in)
			if twice := fn(once); twice != once {
				t.Fatalf("%s not idempotent for %q: %q then %q", name, in, once, twice)
			}
		}
	}
}

func TestFields(t *testing.T) {
	t.Parallel()

	m := Fields(map[string]string{"name": " <Jane> ", "message": "hi onload=x"})
	if m["name"] != "Jane" || m["message"] != "hi x" {
		t.Fatalf("Fields = %v", m)
	}
}

func FuzzField(f *testing.F) {
	for _, seed := range []string{"", "hello", "<script>", "scrscriptipt", "onload=", "javascript:", "\x00\xff", "é"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		out := Field(in)
		if Field(out) != out {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, out, Field(out))
		}
		strict := Strict(in)
		if Strict(strict) != strict {
			t.Fatalf("Strict not idempotent: %q -> %q -> %q", in, strict, Strict(strict))
		}
		if !utf8.ValidString(strict) {
			t.Fatalf("invalid utf8 out of Strict(%q)", in)
		}
		lower := strings.ToLower(out)
		if strings.ContainsAny(out, "<>") || strings.Contains(lower, "script") || strings.Contains(lower, "javascript:") {
			t.Fatalf("vector survived: %q -> %q", in, out)
		}
		if out != strings.TrimSpace(out) {
			t.Fatalf("untrimmed output %q", out)
		}
	})
}
