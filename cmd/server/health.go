package main

import (
	"context"
	"net/http"
	"time"

	"resident/pkg/platform/httputil"
)

const healthTimeout = 2 * time.Second

// healthHandler reports "ok" when every configured backing service answers,
// and 503 with the failing component otherwise.
func healthHandler(in *infra) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		checks := map[string]string{}
		status := http.StatusOK
		record := func(name string, err error) {
			if err != nil {
				checks[name] = "down"
				status = http.StatusServiceUnavailable
				return
			}
			checks[name] = "up"
		}
		if in.db != nil {
			record("postgres", in.db.PingContext(ctx))
		}
		if in.redis != nil {
			record("redis", in.redis.Health(ctx))
		}
		if in.kafka != nil {
			record("kafka", in.kafka.Ping(ctx))
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": overall, "checks": checks})
	}
}
