package policyconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestParseRoundTrip(t *testing.T) {
	want := Config{
		AllowedRoots: []string{"a/", "b/"},
		MaxDepth:     5,
		Membership: []MembershipRule{
			{DomainPrefix: "a/b/", HashPrefix: "de"},
		},
		InternalAllowList: []string{"a/internal"},
		CoexistRules: []CoexistRule{
			{Prefix: "a/b/", Classes: []string{"near", "local"}, MaxRadiusM: 50},
		},
		VisualWhitelist: []string{"a/b/whitelisted"},
		Candidates: []Candidate{
			{Domain: "a/b/c1", Class: "near", RadiusM: 10},
		},
		TTLMax:  4,
		HopsMax: 3,
	}

	data, err := yaml.Marshal(want)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestParseAppliesDefaults(t *testing.T) {
	got, err := Parse([]byte(`allowedRoots: ["a/"]`))
	require.NoError(t, err)
	require.Equal(t, 32, got.MaxDepth)
	require.EqualValues(t, 8, got.TTLMax)
	require.EqualValues(t, 8, got.HopsMax)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/policy.yaml")
	require.Error(t, err)
}
