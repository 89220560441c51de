// Package keyring holds ordered API credential lists per upstream service and
// hands them out round-robin so usage spreads across keys.
package keyring

import "sync"

// Well-known service names
const (
	ServiceOpenRouter = "openrouter"
	ServiceGemini     = "gemini"
	ServiceElevenLabs = "eleven"
)

type rotation struct {
	keys   []string
	cursor int
}

// Ring rotates credentials per service name. Safe for concurrent use; the
// cursor advance is atomic per service.
type Ring struct {
	mu       sync.Mutex
	services map[string]*rotation
}

// New creates an empty Ring.
func New() *Ring {
	return &Ring{services: make(map[string]*rotation)}
}

// Register sets the ordered credential list for a service. Empty entries are
// dropped. Registering again replaces the list and resets the cursor.
func (r *Ring) Register(service string, keys ...string) {
	filtered := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			filtered = append(filtered, k)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[service] = &rotation{keys: filtered}
}

// Next returns the credential at the cursor and advances it, wrapping at the
// end of the list. Returns "" when the service has no configured credentials.
func (r *Ring) Next(service string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	rot, ok := r.services[service]
	if !ok || len(rot.keys) == 0 {
		return ""
	}

	key := rot.keys[rot.cursor]
	rot.cursor = (rot.cursor + 1) % len(rot.keys)
	return key
}

// Size returns the number of credentials configured for a service.
func (r *Ring) Size(service string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	rot, ok := r.services[service]
	if !ok {
		return 0
	}
	return len(rot.keys)
}
