package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pg(code string) *pgconn.PgError { return &pgconn.PgError{Code: code} }

func TestDBErrorCodeMappings(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22001", ErrorCodeInvalidArgument},
		{"57P03", ErrorCodeUnavailable},
		{"23505", ErrorCodeDB},
		{"40001", ErrorCodeDB},
		{"XXXXX", ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(pg(c.code))
		if !ok {
			t.Fatalf("expected ok for PgError code %s", c.code)
		}
		if got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v, want %v", c.code, got, c.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("nope")); ok {
		t.Fatalf("DBErrorCode should return ok=false for non-pg error")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil || FromPostgresf(nil, "x %d", 1) != nil {
		t.Fatalf("nil passthrough broken")
	}
	err := FromPostgresf(pg("23502"), "insert %s", "submission")
	if CodeOf(err) != ErrorCodeValidation {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if e, _ := As(err); e.Message() != "insert submission" {
		t.Fatalf("message = %q", e.Message())
	}
	if CodeOf(FromPostgres(stderrs.New("boom"), "x")) != ErrorCodeDB {
		t.Fatalf("non-pg errors should map to DB")
	}
}

func TestSQLStateHelpers(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", pg("42P01"))
	if !IsUndefinedTable(wrapped) {
		t.Fatalf("IsUndefinedTable should see through wrapping")
	}
	if !IsDuplicateKey(pg("23505")) || IsDuplicateKey(pg("23502")) {
		t.Fatalf("IsDuplicateKey mismatch")
	}
	if _, ok := ExtractPgError(stderrs.New("x")); ok {
		t.Fatalf("ExtractPgError on foreign error")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("q: %w", context.DeadlineExceeded), false},
		{"serialization", pg("40001"), true},
		{"deadlock", Wrap(pg("40P01"), ErrorCodeDB, "tx"), true},
		{"cannot connect", pg("57P03"), true},
		{"unique", pg("23505"), false},
		{"text deadlock", stderrs.New("ERROR: deadlock detected"), true},
		{"text other", stderrs.New("syntax error"), false},
	}
	for _, c := range cases {
		if got := IsRetryable(c.err); got != c.want {
			t.Fatalf("%s: IsRetryable = %v, want %v", c.name, got, c.want)
		}
		if Retryable(c.err) != IsRetryable(c.err) {
			t.Fatalf("%s: Retryable should delegate", c.name)
		}
	}
}
