package policy

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strings"

	"github.com/Nico59000/Ternary-image-codec/internal/trit"
	"golang.org/x/crypto/blake2b"
)

// tick is the policy overlay's ternary rotor counter: it advances mod 3
// on every decision and is one term of selectNeighbour's score.
type tick uint8

func (t tick) next() tick { return (t + 1) % 3 }

// domainFingerprint pre-hashes a requester/candidate domain pair with
// blake2b-256 before it ever reaches the rotor's FNV-1a seed. This
// folds variable-length domain strings down to a fixed-size digest so
// the FNV-1a pass that follows sees uniform-length input regardless of
// how deep a domain path is.
func domainFingerprint(requesterDomain, candidate string) [32]byte {
	return blake2b.Sum256([]byte(requesterDomain + "\x00" + candidate))
}

// rotorSeed folds a requester's domain/candidate fingerprint, version,
// and radius into an FNV-1a 64-bit value.
func rotorSeed(m Meta, candidate string) uint64 {
	fp := domainFingerprint(m.Domain, candidate)
	h := fnv.New64a()
	h.Write(fp[:])
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], m.Version)
	binary.LittleEndian.PutUint64(buf[4:12], math.Float64bits(m.RadiusM))
	h.Write(buf[:])
	return h.Sum64()
}

// proximityScore is a balanced trit: +1 when either domain string is a
// prefix of the other (e.g. the candidate extends the requester's
// domain), -1 when the two strings share no leading characters at all,
// 0 otherwise.
func proximityScore(requester, candidate string) trit.Balanced {
	switch {
	case strings.HasPrefix(candidate, requester) || strings.HasPrefix(requester, candidate):
		return 1
	case commonPrefixLen(requester, candidate) == 0:
		return -1
	default:
		return 0
	}
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// selectNeighbour deterministically picks one redirect candidate by
// combining, per candidate, the FNV-1a rotor seed, the current ternary
// tick, and the balanced proximity score; the candidate with the
// highest combined value wins, ties broken by registration order.
func selectNeighbour(requester Meta, candidates []string, t tick) string {
	var best string
	var bestScore uint64
	for i, c := range candidates {
		score := rotorSeed(requester, c) + uint64(t) + uint64(proximityScore(requester.Domain, c)+1)
		if i == 0 || score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}
