package pipeline

import (
	"context"
)

// Result describes what a stage decided. Stop ends the chain; Delete asks
// the caller to remove the message; NotifyOwner asks for a deletion notice
// to the chat owner. Stages that only observe return a zero Result.
type Result struct {
	Stop        bool
	Delete      bool
	NotifyOwner bool
	Reason      string
	FilterName  string
}

type Filter interface {
	Name() string
	Process(ctx context.Context, payload Payload) (*Result, error)
}
