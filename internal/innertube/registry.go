package innertube

import "strings"

// Registry resolves client profiles by their ID.
type Registry interface {
	Get(name string) (ClientProfile, bool)
	All() []ClientProfile
}

// profileRegistry holds the built-in profiles in a fixed order. Profiles
// are immutable values, so lookups need no synchronization.
type profileRegistry struct {
	profiles []ClientProfile
}

// NewRegistry returns the registry of built-in client profiles.
func NewRegistry() Registry {
	return &profileRegistry{
		profiles: []ClientProfile{AndroidClient, WebClient},
	}
}

func (r *profileRegistry) Get(name string) (ClientProfile, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range r.profiles {
		if p.ID == name {
			return p, true
		}
	}
	return ClientProfile{}, false
}

func (r *profileRegistry) All() []ClientProfile {
	all := make([]ClientProfile, len(r.profiles))
	copy(all, r.profiles)
	return all
}
