// Implements the WaitLine, the single shared FIFO queue of customers
// waiting for a free box. Customers are enqueued on arrival and removed
// exactly once, by box assignment or by abandonment.

package sim

import (
	"fmt"
	"strings"

	"github.com/gammazero/deque"
)

// WaitLine is a FIFO wait line: insertion order is arrival order, and the
// head is always the customer who has waited longest.
type WaitLine struct {
	line deque.Deque[*Customer]
}

// Enqueue adds a customer to the back of the line.
func (wl *WaitLine) Enqueue(c *Customer) {
	wl.line.PushBack(c)
}

// Len returns the number of customers in the line.
func (wl *WaitLine) Len() int {
	return wl.line.Len()
}

// Front returns the customer at the head of the line without removing them.
// Returns nil if the line is empty.
func (wl *WaitLine) Front() *Customer {
	if wl.line.Len() == 0 {
		return nil
	}
	return wl.line.Front()
}

// PopFront removes and returns the customer at the head of the line.
// Returns nil if the line is empty.
func (wl *WaitLine) PopFront() *Customer {
	if wl.line.Len() == 0 {
		return nil
	}
	return wl.line.PopFront()
}

// RemoveWhere removes every customer matching pred and returns them in line
// order. The relative order of the remaining customers is preserved.
func (wl *WaitLine) RemoveWhere(pred func(*Customer) bool) []*Customer {
	var removed []*Customer
	// Walk back to front so removal does not shift unvisited indices.
	for i := wl.line.Len() - 1; i >= 0; i-- {
		if pred(wl.line.At(i)) {
			removed = append(removed, wl.line.Remove(i))
		}
	}
	// Removal order above is back to front; report in line order.
	for i, j := 0, len(removed)-1; i < j; i, j = i+1, j-1 {
		removed[i], removed[j] = removed[j], removed[i]
	}
	return removed
}

func (wl *WaitLine) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < wl.line.Len(); i++ {
		sb.WriteString(fmt.Sprint(wl.line.At(i)))
		if i < wl.line.Len()-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
