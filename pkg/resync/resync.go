package resync

import "sync"

// Once behaves like sync.Once but can be reset, which is convenient to
// reinitialize singletons between tests.
type Once struct {
	m    sync.Mutex
	done bool
}

func (o *Once) Do(f func()) {
	o.m.Lock()
	defer o.m.Unlock()
	if o.done {
		return
	}
	f()
	o.done = true
}

// Reset forgets that Do was called. The next call to Do runs f again.
func (o *Once) Reset() {
	o.m.Lock()
	defer o.m.Unlock()
	o.done = false
}
