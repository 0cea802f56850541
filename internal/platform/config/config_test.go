package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "devsolutions/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("CORE_").Prefix("API_")
	if got := api.key("RATE_MAX"); got != "CORE_API_RATE_MAX" {
		t.Fatalf("key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  devsolutions ")
	if got := c.MustString("NAME"); got != "devsolutions" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_INT", " 8 ")
	t.Setenv("M_INT_BAD", "eight")
	t.Setenv("M_I64", "10485760")
	t.Setenv("M_BOOL", "true")
	t.Setenv("M_BOOL_BAD", "maybe")
	t.Setenv("M_DUR", "15m")
	t.Setenv("M_DUR_BAD", "soon")

	if c.MayInt("INT", 1) != 8 || c.MayInt("INT_BAD", 1) != 1 || c.MayInt("UNSET", 3) != 3 {
		t.Fatalf("MayInt mismatch")
	}
	if c.MayInt64("I64", 0) != 10<<20 {
		t.Fatalf("MayInt64 mismatch")
	}
	if !c.MayBool("BOOL", false) || !c.MayBool("BOOL_BAD", true) {
		t.Fatalf("MayBool mismatch")
	}
	if c.MayDuration("DUR", time.Hour) != 15*time.Minute || c.MayDuration("DUR_BAD", time.Hour) != time.Hour {
		t.Fatalf("MayDuration mismatch")
	}
	if c.MayString("UNSET", "d") != "d" {
		t.Fatalf("MayString default")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("C_")
	t.Setenv("C_ORIGINS", " https://a.example , ,https://b.example ")
	t.Setenv("C_EMPTY", " , ")

	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("MayCSV = %#v", got)
	}
	if def := c.MayCSV("EMPTY", []string{"*"}); len(def) != 1 || def[0] != "*" {
		t.Fatalf("MayCSV empty should fall back, got %#v", def)
	}
}

func TestMayAddr(t *testing.T) {
	c := New().Prefix("P_")
	cases := []struct{ env, want string }{
		{"4000", ":4000"},
		{":8080", ":8080"},
		{"0", ":9"},
		{"70000", ":9"},
		{"http", ":9"},
		{"", ":9"},
	}
	for _, tc := range cases {
		t.Setenv("P_PORT", tc.env)
		if got := c.MayAddr("PORT", ":9"); got != tc.want {
			t.Fatalf("MayAddr(%q) = %q, want %q", tc.env, got, tc.want)
		}
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("DOTENV_FRESH=from-file\nDOTENV_SET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_SET", "from-env")
	t.Setenv("DOTENV_FRESH", "")
	os.Unsetenv("DOTENV_FRESH")

	if err := LoadDotenv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	if got := os.Getenv("DOTENV_FRESH"); got != "from-file" {
		t.Fatalf("DOTENV_FRESH = %q", got)
	}
	if got := os.Getenv("DOTENV_SET"); got != "from-env" {
		t.Fatalf("existing env should win, got %q", got)
	}
}
