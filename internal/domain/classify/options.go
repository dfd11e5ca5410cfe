// Package classify turns roster observations into trophy events by
// diffing against the snapshot store.
package classify

// Option applies a configuration option to the SnapshotClassifier.
type Option func(*SnapshotClassifier)

// WithEventIDFunc overrides the event id generator. Tests use this to
// produce deterministic ids.
func WithEventIDFunc(fn func() string) Option {
	return func(c *SnapshotClassifier) {
		if fn != nil {
			c.newEventID = fn
		}
	}
}
