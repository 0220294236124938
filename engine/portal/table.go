package portal

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-portal/common"
)

type tableImpl struct {
	portals map[Handle]*portalImpl
	next    Handle
}

// Table owns every portal and the links between them. Portals reference their exit by Handle,
// and links are always mutual: if A's exit is B then B's exit is A.
type Table interface {
	// Create adds a new portal to the table.
	//
	// Parameters:
	//   - options: functional options to configure the portal
	//
	// Returns:
	//   - Portal: the new portal, with a fresh non-zero handle
	Create(options ...PortalBuilderOption) Portal

	// Get looks up a portal by handle.
	//
	// Parameters:
	//   - h: the portal handle
	//
	// Returns:
	//   - Portal: the portal, or nil
	//   - bool: false if the handle is unknown
	Get(h Handle) (Portal, bool)

	// Link mutually links two unlinked portals and bumps both generations.
	//
	// Parameters:
	//   - a, b: the handles to link
	//
	// Returns:
	//   - error: ErrUnknownPortal, ErrSelfLink or ErrAlreadyLinked on failure
	Link(a, b Handle) error

	// Unlink breaks the link of h and its partner and bumps both generations.
	// Unlinking an unlinked portal is a no-op.
	//
	// Parameters:
	//   - h: either portal of the pair
	//
	// Returns:
	//   - error: ErrUnknownPortal if h is not in the table
	Unlink(h Handle) error

	// Exit returns the portal linked to h.
	//
	// Parameters:
	//   - h: the entry portal handle
	//
	// Returns:
	//   - Portal: the exit portal, or nil
	//   - bool: false if h is unknown or unlinked
	Exit(h Handle) (Portal, bool)

	// Remove unlinks and deletes a portal.
	//
	// Parameters:
	//   - h: the handle to remove
	//
	// Returns:
	//   - error: ErrUnknownPortal if h is not in the table
	Remove(h Handle) error

	// Generation returns the link generation of h, or 0 when h is unknown.
	//
	// Parameters:
	//   - h: the portal handle
	//
	// Returns:
	//   - uint64: the link generation
	Generation(h Handle) uint64

	// Handles returns the live handles in ascending order.
	//
	// Returns:
	//   - []Handle: the live handles
	Handles() []Handle

	// Len returns the number of live portals.
	//
	// Returns:
	//   - int: the portal count
	Len() int
}

var _ Table = &tableImpl{}

// NewTable creates an empty portal table.
//
// Returns:
//   - Table: the new table
func NewTable() Table {
	return &tableImpl{
		portals: make(map[Handle]*portalImpl),
	}
}

func (t *tableImpl) Create(options ...PortalBuilderOption) Portal {
	p := NewPortal(options...).(*portalImpl)
	t.next++
	p.handle = t.next
	p.exit = NoHandle
	t.portals[p.handle] = p
	return p
}

func (t *tableImpl) Get(h Handle) (Portal, bool) {
	p, ok := t.portals[h]
	if !ok {
		return nil, false
	}
	return p, true
}

func (t *tableImpl) Link(a, b Handle) error {
	if a == b {
		return fmt.Errorf("link %d: %w", a, ErrSelfLink)
	}
	pa, ok := t.portals[a]
	if !ok {
		return fmt.Errorf("link %d to %d: %w", a, b, ErrUnknownPortal)
	}
	pb, ok := t.portals[b]
	if !ok {
		return fmt.Errorf("link %d to %d: %w", a, b, ErrUnknownPortal)
	}
	if pa.exit != NoHandle || pb.exit != NoHandle {
		return fmt.Errorf("link %d to %d: %w", a, b, ErrAlreadyLinked)
	}

	pa.exit, pb.exit = b, a
	pa.generation++
	pb.generation++
	common.Logger().Info("portals linked", "a", a, "b", b)
	return nil
}

func (t *tableImpl) Unlink(h Handle) error {
	p, ok := t.portals[h]
	if !ok {
		return fmt.Errorf("unlink %d: %w", h, ErrUnknownPortal)
	}
	t.unlink(p)
	return nil
}

func (t *tableImpl) unlink(p *portalImpl) {
	if p.exit == NoHandle {
		return
	}
	if partner, ok := t.portals[p.exit]; ok && partner.exit == p.handle {
		partner.exit = NoHandle
		partner.generation++
	}
	common.Logger().Info("portals unlinked", "a", p.handle, "b", p.exit)
	p.exit = NoHandle
	p.generation++
}

func (t *tableImpl) Exit(h Handle) (Portal, bool) {
	p, ok := t.portals[h]
	if !ok || p.exit == NoHandle {
		return nil, false
	}
	exit, ok := t.portals[p.exit]
	if !ok {
		return nil, false
	}
	return exit, true
}

func (t *tableImpl) Remove(h Handle) error {
	p, ok := t.portals[h]
	if !ok {
		return fmt.Errorf("remove %d: %w", h, ErrUnknownPortal)
	}
	t.unlink(p)
	delete(t.portals, h)
	return nil
}

func (t *tableImpl) Generation(h Handle) uint64 {
	if p, ok := t.portals[h]; ok {
		return p.generation
	}
	return 0
}

func (t *tableImpl) Handles() []Handle {
	out := make([]Handle, 0, len(t.portals))
	for h := range t.portals {
		out = append(out, h)
	}
	slices.Sort(out)
	return out
}

func (t *tableImpl) Len() int {
	return len(t.portals)
}
