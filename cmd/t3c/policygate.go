package main

import (
	"fmt"

	"github.com/Nico59000/Ternary-image-codec/internal/policy"
	"github.com/Nico59000/Ternary-image-codec/internal/policyconfig"
)

// buildApprove returns the meta-only approve callback a container
// reader needs. With no --policy flag every frame is approved, since
// that's the common case for a tool operating on its own output. With
// --policy it parses the meta blob as policy.Meta and runs the full
// access-policy decision, approving only Internal/CoexistAccepted
// outcomes. The CLI never supplies Prepare/Accept callbacks, so a
// PREP/ACCEPT redirect candidate is reported as refused rather than
// silently granted.
func buildApprove(policyConfigPath string) (func(meta []byte) (bool, error), error) {
	if policyConfigPath == "" {
		return func([]byte) (bool, error) { return true, nil }, nil
	}

	cfg, err := policyconfig.Load(policyConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load policy config: %w", err)
	}
	pol := policy.New(cfg)

	return func(meta []byte) (bool, error) {
		m, err := policy.ParseMeta(meta)
		if err != nil {
			return false, fmt.Errorf("parse meta: %w", err)
		}
		res := pol.Decide(m, policy.Callbacks{})
		return res.Decision.Grants(), nil
	}, nil
}
