package render_target

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-portal/common"
)

// Stats counts pool activity since creation.
type Stats struct {
	Acquired  int // successful Acquire calls
	Released  int // successful Release calls
	Created   int // targets created by the allocator
	Destroyed int // targets freed by the allocator
	Reused    int // Acquire calls served from the idle list
	Failed    int // Acquire calls that returned an error
	Live      int // targets currently handed out
	Idle      int // released targets kept for reuse
}

type pool struct {
	allocator Allocator
	capacity  int
	idleLimit int

	nextID uint64
	live   map[uint64]RenderTarget
	idle   map[Descriptor][]RenderTarget
	stats  Stats
}

// Pool hands out temporary render targets and takes them back. Every acquired target must be
// released exactly once; a second release of the same target fails with ErrNotLive.
type Pool interface {
	// Acquire returns a target matching desc, reusing an idle one when possible.
	//
	// Parameters:
	//   - desc: the target descriptor; unset fields take their defaults
	//
	// Returns:
	//   - RenderTarget: the target
	//   - error: an error wrapping ErrResourceExhausted if no target could be provided
	Acquire(desc Descriptor) (RenderTarget, error)

	// Release returns a target to the pool.
	//
	// Parameters:
	//   - rt: the target to release
	//
	// Returns:
	//   - error: an error wrapping ErrNotLive if rt is nil or was not live
	Release(rt RenderTarget) error

	// IsLive reports whether rt is currently handed out by this pool.
	//
	// Parameters:
	//   - rt: the target to check
	//
	// Returns:
	//   - bool: true if rt is live
	IsLive(rt RenderTarget) bool

	// Stats returns the pool counters.
	//
	// Returns:
	//   - Stats: a snapshot of the counters
	Stats() Stats

	// Close frees every idle target. Live targets are freed too and reported as an error,
	// since they indicate a leak.
	//
	// Returns:
	//   - error: an error wrapping ErrNotLive listing leaked targets, or nil
	Close() error
}

var _ Pool = &pool{}

// NewPool creates a pool with unlimited capacity backed by the memory allocator.
//
// Parameters:
//   - options: functional options to configure the pool
//
// Returns:
//   - Pool: the new pool
func NewPool(options ...PoolBuilderOption) Pool {
	p := &pool{
		allocator: NewMemoryAllocator(),
		idleLimit: 8,
		live:      make(map[uint64]RenderTarget),
		idle:      make(map[Descriptor][]RenderTarget),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *pool) Acquire(desc Descriptor) (RenderTarget, error) {
	desc = desc.Normalized()
	if desc.Width <= 0 || desc.Height <= 0 {
		p.stats.Failed++
		return nil, fmt.Errorf("acquire %dx%d: invalid size: %w", desc.Width, desc.Height, ErrResourceExhausted)
	}
	if p.capacity > 0 && len(p.live) >= p.capacity {
		p.stats.Failed++
		return nil, fmt.Errorf("acquire %dx%d: %d of %d targets live: %w",
			desc.Width, desc.Height, len(p.live), p.capacity, ErrResourceExhausted)
	}

	var rt RenderTarget
	if list := p.idle[desc]; len(list) > 0 {
		rt = list[len(list)-1]
		p.idle[desc] = list[:len(list)-1]
		p.stats.Idle--
		p.stats.Reused++
	} else {
		p.nextID++
		created, err := p.allocator.Allocate(p.nextID, desc)
		if err != nil {
			p.stats.Failed++
			return nil, fmt.Errorf("acquire %dx%d: %w: %w", desc.Width, desc.Height, ErrResourceExhausted, err)
		}
		rt = created
		p.stats.Created++
	}

	p.live[rt.ID()] = rt
	p.stats.Acquired++
	p.stats.Live = len(p.live)
	return rt, nil
}

func (p *pool) Release(rt RenderTarget) error {
	if rt == nil {
		return fmt.Errorf("release nil target: %w", ErrNotLive)
	}
	held, ok := p.live[rt.ID()]
	if !ok || held != rt {
		return fmt.Errorf("release target %d: %w", rt.ID(), ErrNotLive)
	}
	delete(p.live, rt.ID())
	p.stats.Released++
	p.stats.Live = len(p.live)

	desc := rt.Descriptor()
	if p.stats.Idle < p.idleLimit {
		p.idle[desc] = append(p.idle[desc], rt)
		p.stats.Idle++
		return nil
	}
	p.allocator.Free(rt)
	p.stats.Destroyed++
	return nil
}

func (p *pool) IsLive(rt RenderTarget) bool {
	if rt == nil {
		return false
	}
	held, ok := p.live[rt.ID()]
	return ok && held == rt
}

func (p *pool) Stats() Stats {
	return p.stats
}

func (p *pool) Close() error {
	for desc, list := range p.idle {
		for _, rt := range list {
			p.allocator.Free(rt)
			p.stats.Destroyed++
		}
		delete(p.idle, desc)
	}
	p.stats.Idle = 0

	var errs []error
	for id, rt := range p.live {
		errs = append(errs, fmt.Errorf("target %d still live at close: %w", id, ErrNotLive))
		p.allocator.Free(rt)
		p.stats.Destroyed++
		delete(p.live, id)
	}
	p.stats.Live = 0
	if len(errs) > 0 {
		common.Logger().Warn("render target pool closed with live targets", "count", len(errs))
	}
	return errors.Join(errs...)
}
