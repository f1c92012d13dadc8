package publisher

// Publisher announces stored articles to downstream consumers (the
// rendering layer subscribes to the stream).
type Publisher interface {
	// Publish publishes a message under a key to a stream
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
