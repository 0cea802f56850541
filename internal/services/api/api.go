// Package api assembles the HTTP API from its modules
package api

import (
	"time"

	"devsolutions/internal/core/ratelimit"
	"devsolutions/internal/platform/config"
	"devsolutions/internal/platform/logger"
	phttp "devsolutions/internal/platform/net/http"
	"devsolutions/internal/platform/net/middleware"
	"devsolutions/internal/platform/store"
	ptime "devsolutions/internal/platform/time"

	"devsolutions/internal/modkit"
	"devsolutions/internal/modkit/httpkit"
	"devsolutions/internal/modkit/swaggerkit"

	blogmod "devsolutions/internal/services/api/blog/module"
	contactmod "devsolutions/internal/services/api/contact/module"
	metamod "devsolutions/internal/services/api/meta/module"
)

// APIThrottleMessage is returned when a client exceeds the API wide limit
const APIThrottleMessage = "Too many API requests. Please slow down."

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store // nil runs without backends
	Clock          ptime.Clock  // default ptime.System
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string // default any origin
}

// Mount mounts the API service onto the given router and returns the built modules
func Mount(r phttp.Router, opt Options) []modkit.Module {
	deps := modkit.Deps{Cfg: opt.Config, Clock: opt.Clock}
	if deps.Clock == nil {
		deps.Clock = ptime.System
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		// a nil *redis.Client must not become a non nil interface
		if opt.Store.Redis != nil {
			deps.Redis = opt.Store.Redis
		}
	}

	// root scope: headers and scanner filters apply to everything, including docs
	r.Use(
		middleware.Security(middleware.SecurityOptions{}),
		middleware.Heartbeat("/healthz"),
	)

	var rlStore ratelimit.Store = ratelimit.NewMemoryStore(ratelimit.DefaultMaxEntries)
	if deps.Redis != nil {
		rlStore = ratelimit.NewRedisStore(deps.Redis, "rl:")
	}
	apiLimiter := ratelimit.New(rlStore, ratelimit.Options{
		Name:   "api",
		Window: opt.Config.MayDuration("RATE_WINDOW", ratelimit.APIWindow),
		Max:    opt.Config.MayInt("RATE_MAX", ratelimit.APIMax),
		Clock:  deps.Clock,
	})

	mods := []modkit.Module{
		metamod.New(deps),
		contactmod.New(deps),
		blogmod.New(deps),
	}

	stack := append(
		httpkit.CommonStack(httpkit.StackOptions{
			CORS:    middleware.CORSOptions{AllowedOrigins: opt.CORSOrigins},
			Timeout: opt.Config.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		}),
		middleware.RateLimit(apiLimiter.Check, APIThrottleMessage),
	)

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	names := make([]string, 0, len(mods))
	for _, m := range mods {
		names = append(names, m.Name())
	}
	logger.Named("api").Info().Strs("modules", names).Msg("api mounted")
	return mods
}
