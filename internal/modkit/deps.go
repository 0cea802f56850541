package modkit

import (
	"devsolutions/internal/modkit/repokit"
	"devsolutions/internal/platform/config"
	ptime "devsolutions/internal/platform/time"

	"github.com/redis/go-redis/v9"
)

// Deps holds core dependencies passed to modules
// optional backends are nil when disabled; modules must nil check
type Deps struct {
	Cfg   config.Conf
	PG    repokit.TxRunner
	Redis redis.UniversalClient
	Clock ptime.Clock
}
