package portal_camera

import (
	"github.com/google/uuid"
)

type registry struct {
	agents map[uuid.UUID]PortalCamera
	stack  []PortalCamera
}

// Registry maps driven camera identities to the portal cameras that own them, and tracks which
// portal cameras are rendering right now.
type Registry interface {
	// Register maps id to pc, replacing any previous entry.
	//
	// Parameters:
	//   - id: the driven camera id
	//   - pc: the portal camera
	Register(id uuid.UUID, pc PortalCamera)

	// Unregister removes the entry for id.
	//
	// Parameters:
	//   - id: the driven camera id
	Unregister(id uuid.UUID)

	// Lookup returns the portal camera registered for id.
	//
	// Parameters:
	//   - id: the driven camera id
	//
	// Returns:
	//   - PortalCamera: the portal camera, or nil
	//   - bool: false if id is not registered
	Lookup(id uuid.UUID) (PortalCamera, bool)

	// Len returns the number of registered portal cameras.
	//
	// Returns:
	//   - int: the entry count
	Len() int

	// Current returns the innermost portal camera whose render is in progress.
	//
	// Returns:
	//   - PortalCamera: the rendering portal camera, or nil
	//   - bool: false if no portal render is in progress
	Current() (PortalCamera, bool)

	// Depth returns the number of portal renders in progress.
	//
	// Returns:
	//   - int: the render stack depth
	Depth() int

	push(pc PortalCamera)
	pop(pc PortalCamera)
}

var _ Registry = &registry{}

// NewRegistry creates an empty registry.
//
// Returns:
//   - Registry: the new registry
func NewRegistry() Registry {
	return &registry{
		agents: make(map[uuid.UUID]PortalCamera),
	}
}

func (r *registry) Register(id uuid.UUID, pc PortalCamera) {
	r.agents[id] = pc
}

func (r *registry) Unregister(id uuid.UUID) {
	delete(r.agents, id)
}

func (r *registry) Lookup(id uuid.UUID) (PortalCamera, bool) {
	pc, ok := r.agents[id]
	return pc, ok
}

func (r *registry) Len() int {
	return len(r.agents)
}

func (r *registry) Current() (PortalCamera, bool) {
	if len(r.stack) == 0 {
		return nil, false
	}
	return r.stack[len(r.stack)-1], true
}

func (r *registry) Depth() int {
	return len(r.stack)
}

func (r *registry) push(pc PortalCamera) {
	r.stack = append(r.stack, pc)
}

// pop removes pc and anything pushed above it.
func (r *registry) pop(pc PortalCamera) {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i] == pc {
			clear(r.stack[i:])
			r.stack = r.stack[:i]
			return
		}
	}
}
