// Defines the Box struct, one parallel service station. Boxes are created
// once at construction and cycle between free and occupied for the whole run.

package sim

import "fmt"

// Box is a service station that serves exactly one customer at a time.
// Invariant: Occupied ⟺ Current != nil ⟺ DoneTick != None.
type Box struct {
	ID       int
	Occupied bool
	Current  *Customer // customer being served; the box holds a transient reference only
	DoneTick int64     // tick at which the current service completes, None when free
}

// NewBox creates a free box with the given id.
func NewBox(id int) *Box {
	return &Box{ID: id, DoneTick: None}
}

// Assign starts serving c at tick now for the given duration.
// Panics if the box is already occupied; the simulator only assigns to
// free boxes, so an occupied box here means corrupted state.
func (b *Box) Assign(c *Customer, now int64, duration int64) {
	if b.Occupied {
		panic(fmt.Sprintf("Box %d: Assign on occupied box", b.ID))
	}
	if c.Abandoned() {
		panic(fmt.Sprintf("Box %d: Assign of abandoned customer %d", b.ID, c.ID))
	}
	b.Occupied = true
	b.Current = c
	b.DoneTick = now + duration

	c.State = StateServing
	c.ServiceStart = now
	c.BoxID = int64(b.ID)
}

// Release frees the box and returns the customer whose service finished.
func (b *Box) Release() *Customer {
	if !b.Occupied || b.Current == nil || b.DoneTick == None {
		panic(fmt.Sprintf("Box %d: Release on inconsistent box", b.ID))
	}
	c := b.Current
	b.Occupied = false
	b.Current = nil
	b.DoneTick = None
	return c
}
