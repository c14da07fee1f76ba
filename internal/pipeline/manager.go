// Package pipeline runs group messages through an ordered filter chain.
// The order is part of the contract: it decides which stage a deletion is
// attributed to and whether an owner notification fires.
package pipeline

import "context"

type Manager struct {
	filters []Filter
}

func NewManager(filters ...Filter) *Manager {
	return &Manager{filters: filters}
}

// Process runs the stages in order until one stops the chain. Stages that
// act without stopping (the spam stage, the stats upsert) do their work
// inside Process and return a zero Result.
func (m *Manager) Process(ctx context.Context, payload Payload) (*Result, error) {
	for _, f := range m.filters {
		res, err := f.Process(ctx, payload)
		if err != nil {
			return nil, err
		}
		if res.Stop {
			return res, nil
		}
	}
	return &Result{}, nil
}
