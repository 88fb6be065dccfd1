package policy

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithBoltCacheSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prep.db")

	p1 := New(baseConfig(), WithBoltCache(dbPath))
	requester := Meta{Domain: "a/b/c", Class: ClassNear, RadiusM: 10}
	res := p1.Decide(requester, Callbacks{
		Prepare: func(req, neighbour string) (string, bool) { return "a/b/c1", true },
	})
	require.Equal(t, DecisionPending, res.Decision)
	require.NoError(t, p1.Close())

	p2 := New(baseConfig(), WithBoltCache(dbPath))
	defer p2.Close()
	require.True(t, p2.HasPreparedTarget("a/b/c"))

	requester.Route.Phase = 1
	round2 := p2.Decide(requester, Callbacks{
		Accept: func(req, target string) bool { return true },
	})
	require.Equal(t, DecisionRedirect, round2.Decision)
	require.Equal(t, "a/b/c1", round2.Target)
}
