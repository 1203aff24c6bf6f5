package pubsub

// Pack is one message on a topic. Key carries the event name and Msg
// the JSON-encoded event body.
type Pack struct {
	Key []byte
	Msg []byte
}
