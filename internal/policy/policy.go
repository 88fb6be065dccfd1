// Package policy implements the access-policy overlay: a metadata-only
// gate deciding whether a container's payload may be read, with a
// two-round PREP/ACCEPT protocol for redirecting a request to a
// better-suited neighbour domain.
package policy

import (
	"strings"
	"sync"

	"github.com/Nico59000/Ternary-image-codec/internal/policyconfig"
)

// Decision is the outcome of one policy call.
type Decision uint8

// Decisions. Internal and CoexistAccepted grant a payload read;
// Reject and Sandbox refuse it. Pending and Redirect are intermediate
// outcomes of the two-round PREP/ACCEPT protocol and never themselves
// grant a read.
const (
	DecisionReject Decision = iota
	DecisionInternal
	DecisionCoexistAccepted
	DecisionPending
	DecisionRedirect
	DecisionSandbox
)

func (d Decision) String() string {
	switch d {
	case DecisionReject:
		return "Reject"
	case DecisionInternal:
		return "Internal"
	case DecisionCoexistAccepted:
		return "CoexistAccepted"
	case DecisionPending:
		return "Pending"
	case DecisionRedirect:
		return "Redirect"
	case DecisionSandbox:
		return "UnknownSandbox"
	default:
		return "Unknown"
	}
}

// Grants reports whether d permits a payload read.
func (d Decision) Grants() bool {
	return d == DecisionInternal || d == DecisionCoexistAccepted
}

// Result is the full outcome of a Decide call.
type Result struct {
	Decision Decision
	Target   string // set for DecisionRedirect
	TTLAfter uint32 // set for DecisionRedirect
}

// Callbacks are the side-effect-only hooks a Decide call may invoke.
// They must not mutate meta and must be safe to call in single-threaded
// order within one decision.
type Callbacks struct {
	// NeighbourQuery approves CoexistAccepted via an external check
	// (e.g. a live query to a neighbour instance) when no static
	// coexist rule matched.
	NeighbourQuery func(m Meta) bool
	// Prepare is the round-1 PREP callback: given the requester and a
	// rotor-selected neighbour, it returns a candidate redirect target.
	Prepare func(requester, neighbour string) (target string, ok bool)
	// Accept is the round-2 ACCEPT callback: given the cached target,
	// it approves or refuses the redirect.
	Accept func(requester, target string) bool
	// UnknownSandboxHook is invoked, for audit only, whenever a
	// decision falls through to UnknownSandbox.
	UnknownSandboxHook func(m Meta)
}

type prepEntry struct {
	Target string `json:"target"`
	TTL    uint32 `json:"ttl"`
	Window int    `json:"window"` // ticks remaining before this entry expires
}

// Policy holds one overlay instance's configuration and mutable state
// (rotor tick, prep cache). It is not a process-wide singleton: create
// one per context that needs independent redirect state.
type Policy struct {
	cfg policyconfig.Config

	mu        sync.Mutex
	rotorTick tick
	prepCache map[string]prepEntry
	store     *boltStore
}

// Option configures optional Policy behaviour.
type Option func(*Policy)

// WithBoltCache backs the prep cache with a bbolt database at path, so
// in-flight PREP/ACCEPT state survives a process restart. Entries
// loaded from disk still obey the normal validity window: a round 2
// arriving after a restart only succeeds if the persisted window had
// not yet expired.
func WithBoltCache(path string) Option {
	return func(p *Policy) {
		store, err := openBoltStore(path)
		if err != nil {
			return
		}
		p.store = store
		if entries, err := store.loadAll(); err == nil {
			for k, v := range entries {
				p.prepCache[k] = v
			}
		}
	}
}

// New builds a Policy instance from a loaded configuration.
func New(cfg policyconfig.Config, opts ...Option) *Policy {
	p := &Policy{
		cfg:       cfg,
		prepCache: make(map[string]prepEntry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close releases any backing durable store. Safe to call even when no
// WithBoltCache option was given.
func (p *Policy) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.close()
}

// Decide runs the full membership/coexist/redirect decision order against one
// meta blob.
func (p *Policy) Decide(m Meta, cb Callbacks) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pruneLocked()
	defer func() { p.rotorTick = p.rotorTick.next() }()

	if !p.rootAllowedLocked(m.Domain) || domainDepth(m.Domain) > p.cfg.MaxDepth {
		return Result{Decision: DecisionReject}
	}

	if p.isMemberLocked(m) {
		return Result{Decision: DecisionInternal}
	}

	if p.coexistMatchLocked(m) && p.whitelistedLocked(m.Domain) {
		return Result{Decision: DecisionCoexistAccepted}
	}

	if cb.NeighbourQuery != nil && cb.NeighbourQuery(m) {
		return Result{Decision: DecisionCoexistAccepted}
	}

	candidates := p.overlapCandidatesLocked(m)
	if len(candidates) > 0 {
		return p.redirectLocked(m, candidates, cb)
	}

	if cb.UnknownSandboxHook != nil {
		cb.UnknownSandboxHook(m)
	}
	return Result{Decision: DecisionSandbox}
}

func (p *Policy) pruneLocked() {
	for k, e := range p.prepCache {
		e.Window--
		if e.Window <= 0 {
			delete(p.prepCache, k)
			if p.store != nil {
				p.store.delete(k) //nolint:errcheck
			}
		} else {
			p.prepCache[k] = e
		}
	}
}

func (p *Policy) rootAllowedLocked(domain string) bool {
	for _, root := range p.cfg.AllowedRoots {
		if strings.HasPrefix(domain, root) {
			return true
		}
	}
	return false
}

func domainDepth(domain string) int {
	if domain == "" {
		return 0
	}
	return strings.Count(strings.Trim(domain, "/"), "/") + 1
}

func (p *Policy) isMemberLocked(m Meta) bool {
	for _, rule := range p.cfg.Membership {
		if strings.HasPrefix(m.Domain, rule.DomainPrefix) && strings.HasPrefix(m.BuildHash, rule.HashPrefix) {
			return true
		}
	}
	for _, allowed := range p.cfg.InternalAllowList {
		if m.Domain == allowed {
			return true
		}
	}
	return false
}

func (p *Policy) coexistMatchLocked(m Meta) bool {
	for _, rule := range p.cfg.CoexistRules {
		if !strings.HasPrefix(m.Domain, rule.Prefix) {
			continue
		}
		if m.RadiusM > rule.MaxRadiusM {
			continue
		}
		for _, class := range rule.Classes {
			if string(m.Class) == class {
				return true
			}
		}
	}
	return false
}

func (p *Policy) whitelistedLocked(domain string) bool {
	for _, w := range p.cfg.VisualWhitelist {
		if domain == w || strings.HasPrefix(domain, w) {
			return true
		}
	}
	return false
}

// overlapCandidatesLocked returns the bottom-tier redirect candidates:
// registered domains sharing the requester's root and its exact depth,
// filtered to those a coexist rule or membership rule would admit.
func (p *Policy) overlapCandidatesLocked(m Meta) []string {
	depth := domainDepth(m.Domain)
	var root string
	for _, r := range p.cfg.AllowedRoots {
		if strings.HasPrefix(m.Domain, r) {
			root = r
			break
		}
	}
	if root == "" {
		return nil
	}

	var out []string
	for _, c := range p.cfg.Candidates {
		if c.Domain == m.Domain {
			continue
		}
		if !strings.HasPrefix(c.Domain, root) {
			continue
		}
		if domainDepth(c.Domain) != depth {
			continue
		}
		if !p.candidateAdmitsLocked(m, c) {
			continue
		}
		out = append(out, c.Domain)
	}
	return out
}

func (p *Policy) candidateAdmitsLocked(m Meta, c policyconfig.Candidate) bool {
	if c.RadiusM > 0 && m.RadiusM > c.RadiusM {
		return false
	}
	for _, rule := range p.cfg.CoexistRules {
		if strings.HasPrefix(c.Domain, rule.Prefix) {
			for _, class := range rule.Classes {
				if c.Class == class {
					return true
				}
			}
		}
	}
	return p.isMemberLocked(Meta{Domain: c.Domain, BuildHash: m.BuildHash})
}

// redirectLocked implements the two-round PREP/ACCEPT protocol.
func (p *Policy) redirectLocked(m Meta, candidates []string, cb Callbacks) Result {
	if m.Route.Phase < 1 {
		neighbour := selectNeighbour(m, candidates, p.rotorTick)
		if cb.Prepare != nil {
			if target, ok := cb.Prepare(m.Domain, neighbour); ok && target != "" {
				// window=2: the prune pass at the start of the very next
				// Decide call (the earliest round-2 can arrive) must still
				// see this entry, so it must survive exactly one decrement;
				// it expires on the prune pass after that.
				entry := prepEntry{Target: target, TTL: m.Route.TTL, Window: 2}
				p.prepCache[m.Domain] = entry
				if p.store != nil {
					p.store.put(m.Domain, entry) //nolint:errcheck
				}
			}
		}
		return Result{Decision: DecisionPending}
	}

	entry, cached := p.prepCache[m.Domain]
	if !cached {
		return Result{Decision: DecisionSandbox}
	}
	accepted := cb.Accept != nil && cb.Accept(m.Domain, entry.Target)
	delete(p.prepCache, m.Domain)
	if p.store != nil {
		p.store.delete(m.Domain) //nolint:errcheck
	}
	if !accepted {
		return Result{Decision: DecisionSandbox}
	}

	ttlAfter := entry.TTL
	if p.cfg.TTLMax < ttlAfter {
		ttlAfter = p.cfg.TTLMax
	}
	if ttlAfter > 0 {
		ttlAfter--
	}
	return Result{Decision: DecisionRedirect, Target: entry.Target, TTLAfter: ttlAfter}
}

// HasPreparedTarget reports whether a prep cache entry exists for
// domain. A target exists iff the prepare callback returned one and
// its validity window has not elapsed.
func (p *Policy) HasPreparedTarget(domain string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.prepCache[domain]
	return ok
}
