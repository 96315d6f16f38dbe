package replica

import "context"

// recentPayloadLimit caps how many trailing payloads a status snapshot
// carries.
const recentPayloadLimit = 3

// Status is a point-in-time snapshot of a replica, exposed as plain data
// for reporting layers to format.
type Status struct {
	Name        string `json:"name"`
	DBPath      string `json:"db_path"`
	Initialized bool   `json:"initialized"`
	RecordCount int    `json:"record_count,omitempty"`
	Root        string `json:"merkle_root,omitempty"`

	// RecentPayloads holds the last up-to-three payloads in insertion
	// order.
	RecentPayloads []string `json:"recent_payloads,omitempty"`
}

// Status returns a snapshot of the replica. For an Uninitialized or Closed
// replica the snapshot carries only identity fields with Initialized=false;
// this is not an error.
func (r *Replica) Status(ctx context.Context) (Status, error) {
	if r.state != StateInitialized {
		return Status{
			Name:        r.name,
			DBPath:      r.dbPath,
			Initialized: false,
		}, nil
	}

	records, err := r.Records(ctx)
	if err != nil {
		return Status{}, err
	}
	root, err := r.Root(ctx)
	if err != nil {
		return Status{}, err
	}

	recent := make([]string, 0, recentPayloadLimit)
	start := len(records) - recentPayloadLimit
	if start < 0 {
		start = 0
	}
	for _, rec := range records[start:] {
		recent = append(recent, rec.Payload)
	}

	return Status{
		Name:           r.name,
		DBPath:         r.dbPath,
		Initialized:    true,
		RecordCount:    len(records),
		Root:           root,
		RecentPayloads: recent,
	}, nil
}
