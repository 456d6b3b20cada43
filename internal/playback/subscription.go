package playback

const eventBufferSize = 16

// Subscription receives the events of a Service. Events are dropped, not
// queued, when the subscriber falls behind by more than a small buffer.
type Subscription struct {
	MetaChanged  <-chan MetaChanged
	TrackChanged <-chan TrackChange
	// Done is closed when the service shuts down.
	Done <-chan struct{}

	meta  chan MetaChanged
	track chan TrackChange
	done  chan struct{}
}

func newSubscription() *Subscription {
	meta := make(chan MetaChanged, eventBufferSize)
	track := make(chan TrackChange, eventBufferSize)
	done := make(chan struct{})
	return &Subscription{
		MetaChanged:  meta,
		TrackChanged: track,
		Done:         done,
		meta:         meta,
		track:        track,
		done:         done,
	}
}

func (s *Subscription) close() { close(s.done) }

func (s *Subscription) sendMeta(e MetaChanged)  { offer(s.meta, e) }
func (s *Subscription) sendTrack(e TrackChange) { offer(s.track, e) }

func offer[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}
