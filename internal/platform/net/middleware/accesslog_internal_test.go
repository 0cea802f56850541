package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestAccessLevel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status  int
		elapsed time.Duration
		slow    time.Duration
		want    zerolog.Level
	}{
		{http.StatusOK, time.Millisecond, 0, zerolog.InfoLevel},
		{http.StatusBadRequest, time.Millisecond, time.Second, zerolog.InfoLevel},
		{http.StatusTooManyRequests, time.Millisecond, 0, zerolog.WarnLevel},
		{http.StatusOK, 3 * time.Second, 2 * time.Second, zerolog.WarnLevel},
		{http.StatusInternalServerError, 3 * time.Second, 2 * time.Second, zerolog.ErrorLevel},
	}
	for _, c := range cases {
		if got := accessLevel(c.status, c.elapsed, c.slow); got != c.want {
			t.Errorf("accessLevel(%d, %v, %v) = %v, want %v", c.status, c.elapsed, c.slow, got, c.want)
		}
	}
}
