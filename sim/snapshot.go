package sim

// BoxView is a read-only view of one box for presentation consumers.
type BoxView struct {
	ID         int
	Occupied   bool
	CustomerID int64 // id of the customer being served, None when free
	DoneTick   int64 // scheduled completion tick, None when free
}

// MetricsView is a read-only copy of the running statistics.
type MetricsView struct {
	Arrived         int
	Served          int
	Abandoned       int
	MinServiceTicks int64
	MaxServiceTicks int64
	MinWaitTicks    int64
	MaxWaitTicks    int64
}

// Snapshot is a point-in-time view of the simulator for rendering and
// reporting. It is a deep copy: callers may hold or mutate it freely
// without affecting the engine, and taking two snapshots without an
// intervening Step yields identical values.
type Snapshot struct {
	Clock       int64
	QueueLength int
	Boxes       []BoxView
	Stats       MetricsView
}

// Snapshot returns a read-only view of the current simulator state.
func (s *Simulator) Snapshot() Snapshot {
	boxes := make([]BoxView, len(s.Boxes))
	for i, b := range s.Boxes {
		v := BoxView{ID: b.ID, Occupied: b.Occupied, CustomerID: None, DoneTick: b.DoneTick}
		if b.Current != nil {
			v.CustomerID = int64(b.Current.ID)
		}
		boxes[i] = v
	}
	return Snapshot{
		Clock:       s.Clock,
		QueueLength: s.Line.Len(),
		Boxes:       boxes,
		Stats: MetricsView{
			Arrived:         s.Metrics.Arrived,
			Served:          s.Metrics.Served,
			Abandoned:       s.Metrics.Abandoned,
			MinServiceTicks: s.Metrics.MinServiceTicks,
			MaxServiceTicks: s.Metrics.MaxServiceTicks,
			MinWaitTicks:    s.Metrics.MinWaitTicks,
			MaxWaitTicks:    s.Metrics.MaxWaitTicks,
		},
	}
}
