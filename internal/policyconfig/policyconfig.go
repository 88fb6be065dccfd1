// Package policyconfig loads the access-policy overlay's configuration
// from YAML: allowed domain roots, membership entries, coexistence
// rules, and the visual whitelist.
package policyconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// MembershipRule grants Internal access to any domain matching both a
// prefix and a build-hash prefix.
type MembershipRule struct {
	DomainPrefix string `yaml:"domainPrefix"`
	HashPrefix   string `yaml:"hashPrefix"`
}

// CoexistRule grants CoexistAccepted to domains under Prefix whose
// proximity class is one of Classes and whose radius_m does not exceed
// MaxRadiusM.
type CoexistRule struct {
	Prefix     string   `yaml:"prefix"`
	Classes    []string `yaml:"classes"`
	MaxRadiusM float64  `yaml:"maxRadiusM"`
}

// Candidate is one entry in the overlap-candidate registry consulted by
// the PREP/ACCEPT redirect logic: other domains sharing a root with a
// requester that might accept a redirected read.
type Candidate struct {
	Domain  string  `yaml:"domain"`
	Class   string  `yaml:"class"`
	RadiusM float64 `yaml:"radiusM"`
}

// Config is the full, YAML-loadable policy configuration.
type Config struct {
	AllowedRoots      []string         `yaml:"allowedRoots"`
	MaxDepth          int              `yaml:"maxDepth"`
	Membership        []MembershipRule `yaml:"membership"`
	InternalAllowList []string         `yaml:"internalAllowList"`
	CoexistRules      []CoexistRule    `yaml:"coexistRules"`
	VisualWhitelist   []string         `yaml:"visualWhitelist"`
	Candidates        []Candidate      `yaml:"candidates"`
	TTLMax            uint32           `yaml:"ttlMax"`
	HopsMax           uint32           `yaml:"hopsMax"`
}

// Load reads and parses a policy config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("policyconfig: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals policy config YAML.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("policyconfig: unmarshal: %w", err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 32
	}
	if cfg.TTLMax == 0 {
		cfg.TTLMax = 8
	}
	if cfg.HopsMax == 0 {
		cfg.HopsMax = 8
	}
	return cfg, nil
}
