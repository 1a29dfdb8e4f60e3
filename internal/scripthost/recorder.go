package scripthost

import "sync"

// Recorder is a Host that keeps every script it receives and answers
// callbacks from a table of canned results. It never executes anything.
type Recorder struct {
	mu        sync.Mutex
	scripts   []string
	responses map[string]string
	async     bool
}

// NewRecorder creates an empty recorder that answers callbacks synchronously.
func NewRecorder() *Recorder {
	return &Recorder{responses: make(map[string]string)}
}

// Async makes callbacks run on their own goroutine, closer to a real host.
func (r *Recorder) Async() *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.async = true
	return r
}

// Respond registers the result returned for script. Scripts without a
// registered result never invoke their callback, mimicking content that is
// not ready.
func (r *Recorder) Respond(script, result string) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[script] = result
	return r
}

// Evaluate implements Host.
func (r *Recorder) Evaluate(script string, cb Callback) {
	r.mu.Lock()
	r.scripts = append(r.scripts, script)
	result, ok := r.responses[script]
	async := r.async
	r.mu.Unlock()

	if cb == nil || !ok {
		return
	}
	if async {
		go cb(result)
		return
	}
	cb(result)
}

// Scripts returns every script received so far.
func (r *Recorder) Scripts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.scripts))
	copy(out, r.scripts)
	return out
}

// Last returns the most recent script, or "" if none.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.scripts) == 0 {
		return ""
	}
	return r.scripts[len(r.scripts)-1]
}

// Reset forgets recorded scripts. Responses are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = nil
}

var _ Host = (*Recorder)(nil)
