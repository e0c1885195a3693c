package proxypool

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// Strategy is the policy for choosing the next proxy from the active pool.
type Strategy string

const (
	StrategyRandom     Strategy = "random"
	StrategyRoundRobin Strategy = "round_robin"
	StrategyLeastUsed  Strategy = "least_used"
)

// ErrInvalidStrategy indicates a rotation strategy outside the known set.
var ErrInvalidStrategy = errors.New("invalid rotation strategy")

const allBusyWait = 100 * time.Millisecond

// Options configures a Manager. Zero values pick the package defaults.
type Options struct {
	// Strategy selects the rotation policy. Default is random.
	Strategy Strategy

	// HealthCheckURL is fetched through each proxy by HealthCheck.
	HealthCheckURL string

	// HealthCheckTimeout bounds each individual health probe.
	HealthCheckTimeout time.Duration

	// MaxFailures is the consecutive-failure count that deactivates a proxy.
	MaxFailures int

	// FailureCooldown is how long a deactivated proxy stays ineligible
	// after its last failure before Reactivate may restore it.
	FailureCooldown time.Duration

	// MinDelay is the minimum gap between two uses of the same proxy.
	MinDelay time.Duration

	// Logger receives housekeeping messages. Nil means silent.
	Logger Logger
}

func (o Options) withDefaults() Options {
	if o.Strategy == "" {
		o.Strategy = StrategyRandom
	}
	if o.HealthCheckURL == "" {
		o.HealthCheckURL = "https://www.google.com"
	}
	if o.HealthCheckTimeout <= 0 {
		o.HealthCheckTimeout = 10 * time.Second
	}
	if o.MaxFailures <= 0 {
		o.MaxFailures = 3
	}
	if o.FailureCooldown <= 0 {
		o.FailureCooldown = 5 * time.Minute
	}
	if o.MinDelay <= 0 {
		o.MinDelay = time.Second
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	return o
}

// Manager owns an ordered pool of proxies and hands them out per the
// configured rotation strategy, tracking failures and cooldowns.
type Manager struct {
	mu      sync.Mutex
	proxies []*Proxy
	opts    Options
	cursor  int

	// test seams
	now     func() time.Time
	sleep   func(time.Duration)
	randInt func(n int) int
}

// New validates the strategy and builds a Manager over the given proxies.
func New(proxies []*Proxy, opts Options) (*Manager, error) {
	opts = opts.withDefaults()
	switch opts.Strategy {
	case StrategyRandom, StrategyRoundRobin, StrategyLeastUsed:
	default:
		return nil, fmt.Errorf("%w: %q (must be one of: random, round_robin, least_used)", ErrInvalidStrategy, opts.Strategy)
	}
	m := &Manager{
		proxies: proxies,
		opts:    opts,
		now:     time.Now,
		sleep:   time.Sleep,
		randInt: rand.Intn,
	}
	opts.Logger.Infof("initialized proxy pool with %d proxies, strategy: %s", len(proxies), opts.Strategy)
	return m, nil
}

// Len returns the pool size, active or not.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.proxies)
}

func (m *Manager) activeLocked() []*Proxy {
	active := make([]*Proxy, 0, len(m.proxies))
	for _, p := range m.proxies {
		if p.active {
			active = append(active, p)
		}
	}
	return active
}

// Next returns the next proxy per the rotation strategy, or nil when no
// proxy is active. The chosen proxy's last-used timestamp is stamped before
// returning. The round-robin cursor indexes the active subset as it exists
// at call time.
func (m *Manager) Next() *Proxy {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.activeLocked()
	if len(active) == 0 {
		m.opts.Logger.Warnf("no active proxies available")
		return nil
	}

	var proxy *Proxy
	switch m.opts.Strategy {
	case StrategyRoundRobin:
		proxy = active[m.cursor%len(active)]
		m.cursor = (m.cursor + 1) % len(active)
	case StrategyLeastUsed:
		proxy = active[0]
		for _, p := range active[1:] {
			if p.lastUsed.Before(proxy.lastUsed) {
				proxy = p
			}
		}
	default:
		proxy = active[m.randInt(len(active))]
	}

	now := m.now()
	if now.Sub(proxy.lastUsed) < m.opts.MinDelay {
		ready := make([]*Proxy, 0, len(active))
		for _, p := range active {
			if now.Sub(p.lastUsed) >= m.opts.MinDelay {
				ready = append(ready, p)
			}
		}
		if len(ready) > 0 {
			proxy = ready[m.randInt(len(ready))]
		} else {
			// Every proxy is inside its per-proxy delay window.
			m.sleep(allBusyWait)
		}
	}

	proxy.lastUsed = now
	m.opts.Logger.Debugf("selected proxy: %s", proxy.DisplayName())
	return proxy
}

// MarkFailed records a failure against the proxy and deactivates it once
// the failure threshold is reached.
func (m *Manager) MarkFailed(p *Proxy, reason string) {
	if p == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p.failCount++
	p.lastFailTime = m.now()
	m.opts.Logger.Warnf("proxy %s failed: %s (failures: %d/%d)", p.DisplayName(), reason, p.failCount, m.opts.MaxFailures)

	if p.failCount >= m.opts.MaxFailures {
		p.active = false
		m.opts.Logger.Warnf("proxy %s deactivated after %d failures", p.DisplayName(), p.failCount)
	}
}

// MarkSuccess resets the proxy's failure streak.
func (m *Manager) MarkSuccess(p *Proxy) {
	if p == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.failCount > 0 {
		p.failCount = 0
		m.opts.Logger.Infof("proxy %s recovered from failures", p.DisplayName())
	}
}

// Reactivate restores deactivated proxies whose cooldown has elapsed,
// resetting their failure counters. It returns how many were restored and
// is safe to call at any cadence.
func (m *Manager) Reactivate() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	reactivated := 0
	for _, p := range m.proxies {
		if p.active || p.failCount < m.opts.MaxFailures {
			continue
		}
		if now.Sub(p.lastFailTime) >= m.opts.FailureCooldown {
			p.active = true
			p.failCount = 0
			reactivated++
			m.opts.Logger.Infof("reactivated proxy: %s", p.DisplayName())
		}
	}
	if reactivated > 0 {
		m.opts.Logger.Infof("reactivated %d proxies", reactivated)
	}
	return reactivated
}

// HealthCheck probes every proxy in the pool sequentially with a single GET
// to the configured health-check URL and records the outcome. The result
// maps each proxy's display name to whether the probe returned HTTP 200.
func (m *Manager) HealthCheck(ctx context.Context) map[string]bool {
	m.mu.Lock()
	proxies := make([]*Proxy, len(m.proxies))
	copy(proxies, m.proxies)
	healthURL := m.opts.HealthCheckURL
	timeout := m.opts.HealthCheckTimeout
	m.mu.Unlock()

	results := make(map[string]bool, len(proxies))
	for _, p := range proxies {
		if err := m.probe(ctx, p, healthURL, timeout); err != nil {
			results[p.DisplayName()] = false
			m.MarkFailed(p, err.Error())
			continue
		}
		results[p.DisplayName()] = true
		m.MarkSuccess(p)
	}
	return results
}

func (m *Manager) probe(ctx context.Context, p *Proxy, healthURL string, timeout time.Duration) error {
	transport, err := p.Transport()
	if err != nil {
		return err
	}
	client := &http.Client{Transport: transport, Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

// Stats is a point-in-time snapshot of pool health.
type Stats struct {
	TotalProxies    int
	ActiveProxies   int
	InactiveProxies int
	TotalFailures   int
	Strategy        Strategy
	HealthCheckURL  string
}

// Stats returns pool counters without side effects.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := 0
	failures := 0
	for _, p := range m.proxies {
		if p.active {
			active++
		}
		failures += p.failCount
	}
	return Stats{
		TotalProxies:    len(m.proxies),
		ActiveProxies:   active,
		InactiveProxies: len(m.proxies) - active,
		TotalFailures:   failures,
		Strategy:        m.opts.Strategy,
		HealthCheckURL:  m.opts.HealthCheckURL,
	}
}
