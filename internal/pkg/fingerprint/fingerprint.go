package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
)

// payload is the canonical structure that gets hashed. encoding/json writes
// struct fields in declaration order and map keys sorted, so the same client
// signal always serializes to the same bytes.
type payload struct {
	IP  string         `json:"ip"`
	Raw map[string]any `json:"raw"`
	UA  string         `json:"ua"`
}

// Hash derives a stable hex digest from the client's fingerprint signal.
// Two punches from the same physical client hash identically; collisions are
// tolerated as false negatives. The digest is for anomaly correlation only,
// never for authorization.
//
// Hash never fails: a nil raw payload degrades to hashing an empty object
// plus whatever user agent and IP are available.
func Hash(raw map[string]any, userAgent, sourceIP string) string {
	if raw == nil {
		raw = map[string]any{}
	}

	data, err := json.Marshal(payload{
		IP:  sourceIP,
		Raw: raw,
		UA:  userAgent,
	})
	if err != nil {
		// Unmarshallable values in raw (channels, NaN) degrade to the
		// empty object rather than failing the punch.
		data, _ = json.Marshal(payload{IP: sourceIP, Raw: map[string]any{}, UA: userAgent})
	}

	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
