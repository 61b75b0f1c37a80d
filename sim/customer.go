// Defines the Customer struct that models one person moving through the
// facility: arrival, waiting, service at a box, and either completion or
// abandonment.

package sim

import "fmt"

// CustomerState represents the lifecycle state of a customer.
type CustomerState string

const (
	StateWaiting   CustomerState = "waiting"
	StateServing   CustomerState = "serving"
	StateServed    CustomerState = "served"
	StateAbandoned CustomerState = "abandoned"
)

// None marks an unset tick or box id on a Customer or Box.
const None int64 = -1

// Customer models a single customer's lifecycle. Tick fields hold None
// until the corresponding event happens. A customer reaches exactly one
// terminal disposition: served (ServiceStart set, later ServiceEnd) or
// abandoned (AbandonTick set); never both.
type Customer struct {
	ID          int           // unique sequential identifier
	State       CustomerState // waiting, serving, served, abandoned
	ArrivalTick int64         // tick the customer joined the line

	ServiceStart int64 // tick service began, None while waiting
	ServiceEnd   int64 // tick service finished, None until served
	BoxID        int64 // assigned box, None while waiting
	AbandonTick  int64 // tick the customer gave up, None unless abandoned
}

// NewCustomer creates a waiting customer that arrived at the given tick.
func NewCustomer(id int, arrival int64) *Customer {
	return &Customer{
		ID:           id,
		State:        StateWaiting,
		ArrivalTick:  arrival,
		ServiceStart: None,
		ServiceEnd:   None,
		BoxID:        None,
		AbandonTick:  None,
	}
}

// Abandoned reports whether the customer left the line without being served.
func (c *Customer) Abandoned() bool {
	return c.AbandonTick != None
}

// WaitTicks returns the time spent in the line: service start minus arrival
// for customers that reached a box, abandonment minus arrival for customers
// that gave up. Returns None for customers still waiting.
func (c *Customer) WaitTicks() int64 {
	switch {
	case c.ServiceStart != None:
		return c.ServiceStart - c.ArrivalTick
	case c.AbandonTick != None:
		return c.AbandonTick - c.ArrivalTick
	}
	return None
}

// ServiceTicks returns the time spent being served, or None if service has
// not finished.
func (c *Customer) ServiceTicks() int64 {
	if c.ServiceStart == None || c.ServiceEnd == None {
		return None
	}
	return c.ServiceEnd - c.ServiceStart
}

func (c *Customer) String() string {
	return fmt.Sprintf("Customer: (ID: %d, State: %s, ArrivalTick: %d)", c.ID, c.State, c.ArrivalTick)
}
