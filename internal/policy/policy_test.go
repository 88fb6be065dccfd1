package policy

import (
	"testing"

	"github.com/Nico59000/Ternary-image-codec/internal/policyconfig"
	"github.com/stretchr/testify/require"
)

func baseConfig() policyconfig.Config {
	return policyconfig.Config{
		AllowedRoots: []string{"a/"},
		MaxDepth:     10,
		Membership: []policyconfig.MembershipRule{
			{DomainPrefix: "a/b/", HashPrefix: "de"},
		},
		CoexistRules: []policyconfig.CoexistRule{
			{Prefix: "a/b/", Classes: []string{"near", "local"}, MaxRadiusM: 100},
		},
		VisualWhitelist: []string{"a/b/whitelisted"},
		Candidates: []policyconfig.Candidate{
			{Domain: "a/b/c1", Class: "near", RadiusM: 50},
			{Domain: "a/b/c2", Class: "near", RadiusM: 50},
		},
		TTLMax:  8,
		HopsMax: 8,
	}
}

func TestRejectOutsideAllowedRoot(t *testing.T) {
	p := New(baseConfig())
	res := p.Decide(Meta{Domain: "z/y"}, Callbacks{})
	require.Equal(t, DecisionReject, res.Decision)
}

func TestRejectExceedsMaxDepth(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxDepth = 1
	p := New(cfg)
	res := p.Decide(Meta{Domain: "a/b/c"}, Callbacks{})
	require.Equal(t, DecisionReject, res.Decision)
}

func TestInternalViaMembership(t *testing.T) {
	p := New(baseConfig())
	res := p.Decide(Meta{Domain: "a/b/device1", BuildHash: "deadbeef"}, Callbacks{})
	require.Equal(t, DecisionInternal, res.Decision)
}

func TestInternalViaAllowList(t *testing.T) {
	cfg := baseConfig()
	cfg.InternalAllowList = []string{"a/special"}
	p := New(cfg)
	res := p.Decide(Meta{Domain: "a/special"}, Callbacks{})
	require.Equal(t, DecisionInternal, res.Decision)
}

func TestCoexistAcceptedViaRuleAndWhitelist(t *testing.T) {
	p := New(baseConfig())
	res := p.Decide(Meta{Domain: "a/b/whitelisted", Class: ClassNear, RadiusM: 10}, Callbacks{})
	require.Equal(t, DecisionCoexistAccepted, res.Decision)
}

func TestCoexistRuleMatchWithoutWhitelistFallsThrough(t *testing.T) {
	p := New(baseConfig())
	// Matches the coexist rule but isn't on the visual whitelist, and
	// there's no neighbour query, so it lands in the redirect-candidate
	// pool (a/b/c1, a/b/c2 share its root and depth and are admitted by
	// the coexist rule) and gets Pending.
	res := p.Decide(Meta{Domain: "a/b/other", Class: ClassNear, RadiusM: 10}, Callbacks{})
	require.Equal(t, DecisionPending, res.Decision)
}

func TestCoexistAcceptedViaNeighbourQuery(t *testing.T) {
	cfg := baseConfig()
	cfg.Candidates = nil
	p := New(cfg)
	res := p.Decide(Meta{Domain: "a/unmatched"}, Callbacks{
		NeighbourQuery: func(m Meta) bool { return m.Domain == "a/unmatched" },
	})
	require.Equal(t, DecisionCoexistAccepted, res.Decision)
}

func TestUnknownSandboxInvokesHook(t *testing.T) {
	cfg := baseConfig()
	cfg.Candidates = nil
	p := New(cfg)
	var hooked Meta
	res := p.Decide(Meta{Domain: "a/nowhere"}, Callbacks{
		UnknownSandboxHook: func(m Meta) { hooked = m },
	})
	require.Equal(t, DecisionSandbox, res.Decision)
	require.Equal(t, "a/nowhere", hooked.Domain)
}

// TestTwoRoundRedirect exercises the two-round PREP/ACCEPT protocol: requester
// "a/b/c" with overlap candidates a/b/c1, a/b/c2; round 1 caches a
// prepared target without redirecting, round 2 either redirects
// (accept=true) or sandboxes (accept=false).
func TestTwoRoundRedirectAccept(t *testing.T) {
	p := New(baseConfig())
	requester := Meta{Domain: "a/b/c", Class: ClassNear, RadiusM: 10, Route: Route{TTL: 4}}

	var preparedWith string
	round1 := p.Decide(requester, Callbacks{
		Prepare: func(req, neighbour string) (string, bool) {
			preparedWith = neighbour
			return "a/b/c1", true
		},
	})
	require.Equal(t, DecisionPending, round1.Decision)
	require.NotEmpty(t, preparedWith)
	require.True(t, p.HasPreparedTarget("a/b/c"))

	requester.Route.Phase = 1
	round2 := p.Decide(requester, Callbacks{
		Accept: func(req, target string) bool {
			require.Equal(t, "a/b/c1", target)
			return true
		},
	})
	require.Equal(t, DecisionRedirect, round2.Decision)
	require.Equal(t, "a/b/c1", round2.Target)
	require.EqualValues(t, 3, round2.TTLAfter)
	require.False(t, p.HasPreparedTarget("a/b/c"))
}

func TestTwoRoundRedirectReject(t *testing.T) {
	p := New(baseConfig())
	requester := Meta{Domain: "a/b/c", Class: ClassNear, RadiusM: 10}

	p.Decide(requester, Callbacks{
		Prepare: func(req, neighbour string) (string, bool) { return "a/b/c1", true },
	})

	requester.Route.Phase = 1
	round2 := p.Decide(requester, Callbacks{
		Accept: func(req, target string) bool { return false },
	})
	require.Equal(t, DecisionSandbox, round2.Decision)
}

func TestRound2WithoutCachedPrepIsSandbox(t *testing.T) {
	p := New(baseConfig())
	requester := Meta{Domain: "a/b/c", Class: ClassNear, RadiusM: 10, Route: Route{Phase: 1}}
	res := p.Decide(requester, Callbacks{})
	require.Equal(t, DecisionSandbox, res.Decision)
}

func TestPrepCacheExpiresAfterValidityWindow(t *testing.T) {
	p := New(baseConfig())
	requester := Meta{Domain: "a/b/c", Class: ClassNear, RadiusM: 10}

	p.Decide(requester, Callbacks{
		Prepare: func(req, neighbour string) (string, bool) { return "a/b/c1", true },
	})
	require.True(t, p.HasPreparedTarget("a/b/c"))

	// Two more decisions on an unrelated domain advance the tick twice
	// without touching the cache entry directly; the entry must expire
	// once its one-tick validity window has elapsed.
	p.Decide(Meta{Domain: "z/unrelated"}, Callbacks{})
	p.Decide(Meta{Domain: "z/unrelated"}, Callbacks{})
	require.False(t, p.HasPreparedTarget("a/b/c"))
}
