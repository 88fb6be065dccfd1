package policy

import (
	"encoding/json"
	"fmt"
)

// Class is the caller-asserted proximity class of a domain in meta.
type Class string

// Proximity classes, per the meta contract.
const (
	ClassLocal   Class = "local"
	ClassNear    Class = "near"
	ClassFar     Class = "far"
	ClassUnknown Class = "unknown"
)

// Route carries the two-round PREP/ACCEPT redirect bookkeeping that
// rides in meta alongside the domain/hash fields. The caller owns
// advancing Phase, decrementing TTL, and incrementing Hops between a
// round-1 and round-2 presentation of the same logical request.
type Route struct {
	TTL    uint32 `json:"route_ttl"`
	Hops   uint32 `json:"route_hops"`
	Phase  uint32 `json:"route_phase"`
	Origin string `json:"route_origin"`
}

// Meta is the set of fields a policy decision reads out of a
// container's meta blob. Unknown keys are tolerated: Meta only binds
// the fields named here, the rest of the JSON object is ignored.
type Meta struct {
	Domain    string  `json:"domain"`
	BuildHash string  `json:"build_hash"`
	TypeHash  string  `json:"type_hash"`
	Version   uint32  `json:"version"`
	Class     Class   `json:"class"`
	RadiusM   float64 `json:"radius_m"`
	Route     Route   `json:"-"`
}

// metaWire is the flattened JSON shape meta blobs actually use: the
// route_* fields sit alongside domain/build_hash/etc rather than under
// a nested "route" object.
type metaWire struct {
	Domain      string  `json:"domain"`
	BuildHash   string  `json:"build_hash"`
	TypeHash    string  `json:"type_hash"`
	Version     uint32  `json:"version"`
	Class       Class   `json:"class"`
	RadiusM     float64 `json:"radius_m"`
	RouteTTL    uint32  `json:"route_ttl"`
	RouteHops   uint32  `json:"route_hops"`
	RoutePhase  uint32  `json:"route_phase"`
	RouteOrigin string  `json:"route_origin"`
}

// ParseMeta decodes a meta blob. encoding/json's struct-tagged
// unmarshal already ignores keys the wire shape doesn't declare, which
// is all the "tolerant, bracket-aware" reading this format needs.
func ParseMeta(raw []byte) (Meta, error) {
	var w metaWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Meta{}, fmt.Errorf("policy: parse meta: %w", err)
	}
	if w.Class == "" {
		w.Class = ClassUnknown
	}
	return Meta{
		Domain:    w.Domain,
		BuildHash: w.BuildHash,
		TypeHash:  w.TypeHash,
		Version:   w.Version,
		Class:     w.Class,
		RadiusM:   w.RadiusM,
		Route: Route{
			TTL:    w.RouteTTL,
			Hops:   w.RouteHops,
			Phase:  w.RoutePhase,
			Origin: w.RouteOrigin,
		},
	}, nil
}
