package scheduler

import "context"

// Backend is the solver plug-in contract. Availability is a capability
// query: an available backend returning a nil plan is treated the same as
// an unavailable one, and callers fall back to the greedy assigner.
type Backend interface {
	Name() string
	Available() bool
	Solve(ctx context.Context, in Input) (*Plan, error)
}

// GreedyBackend wraps the greedy assigner behind the Backend contract.
type GreedyBackend struct {
	Affinity BuildingAffinity
}

func (GreedyBackend) Name() string { return "greedy" }

func (GreedyBackend) Available() bool { return true }

func (b GreedyBackend) Solve(_ context.Context, in Input) (*Plan, error) {
	rng := NewTieBreaker(in.TenantID)
	plan := Assign(in, rng, b.Affinity)
	return &plan, nil
}

// MILPBackend is a declared-but-unlinked MILP solver slot. It reports
// unavailable until a real model is wired in, so requests naming it fall
// back to greedy.
type MILPBackend struct{}

func (MILPBackend) Name() string { return "milp" }

func (MILPBackend) Available() bool { return false }

func (MILPBackend) Solve(context.Context, Input) (*Plan, error) { return nil, nil }

// CPSATBackend is the CP-SAT counterpart of MILPBackend.
type CPSATBackend struct{}

func (CPSATBackend) Name() string { return "cpsat" }

func (CPSATBackend) Available() bool { return false }

func (CPSATBackend) Solve(context.Context, Input) (*Plan, error) { return nil, nil }

// Registry holds the configured backends in registration order.
type Registry struct {
	backends []Backend
}

// NewRegistry builds a registry from the given backends.
func NewRegistry(backends ...Backend) *Registry {
	return &Registry{backends: backends}
}

// Lookup returns the backend registered under name.
func (r *Registry) Lookup(name string) (Backend, bool) {
	for _, b := range r.backends {
		if b.Name() == name {
			return b, true
		}
	}
	return nil, false
}

// Availability reports each backend's capability flag.
func (r *Registry) Availability() map[string]bool {
	result := make(map[string]bool, len(r.backends))
	for _, b := range r.backends {
		result[b.Name()] = b.Available()
	}
	return result
}
