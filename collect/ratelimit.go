package collect

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/chatlens"
	"golang.org/x/time/rate"
)

var _ chatlens.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each chat host. Chat applications
// throttle or challenge clients that open many conversations quickly, but
// different hosts are independent and proceed concurrently.
//
// Hosts can be given their own rate. An override applies to every host that
// contains its identifier, the same matching the site detector uses, so
// "claude.ai" also covers "www.claude.ai".
type DomainLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	rps       float64
	overrides map[string]float64
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithHostRate sets the rate for hosts containing id. A non-positive rps
// disables limiting for them.
func WithHostRate(id string, rps float64) LimiterOption {
	return func(d *DomainLimiter) {
		d.overrides[strings.ToLower(id)] = rps
	}
}

// NewDomainLimiter creates a new DomainLimiter allowing rps requests per
// second to each host, with a burst of 1. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limiters:  make(map[string]*rate.Limiter),
		rps:       rps,
		overrides: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Rate returns the requests per second allowed for host. The longest
// matching override wins.
func (d *DomainLimiter) Rate(host string) float64 {
	host = strings.ToLower(host)
	rps, best := d.rps, -1
	for id, r := range d.overrides {
		if len(id) > best && strings.Contains(host, id) {
			rps, best = r, len(id)
		}
	}
	return rps
}

// Wait blocks until the rate limit allows a request to host.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	rps := d.Rate(host)
	if rps <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
