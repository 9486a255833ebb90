package events

import "context"

// Discard drops every event. It stands in when no event bus is configured.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, string, any) error { return nil }

func (discard) Close() error { return nil }
