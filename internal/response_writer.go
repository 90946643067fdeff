package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter records what the handler chain wrote: the status code,
// the body size, and whether anything was written at all. The error
// handler uses Written to avoid clobbering a partial response, and the
// logging middleware reads Status and Size for the access line.
type ResponseWriter struct {
	http.ResponseWriter

	mu      sync.Mutex
	status  int
	size    int64
	started bool
}

func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status code and drops the rest. Later
// calls with a different code would panic in net/http; here they are a
// no-op so middleware can attempt an error response safely.
func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.status = code
	w.started = true
	w.mu.Unlock()

	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	first := !w.started
	w.started = true
	w.mu.Unlock()

	if first {
		w.ResponseWriter.WriteHeader(w.status)
	}

	n, err := w.ResponseWriter.Write(b)

	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()

	return n, err
}

// Status returns the status code sent to the client, or 200 before the
// first write.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of body bytes written so far.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack hands the TCP connection to the caller, as websocket upgrades
// need. The wrapper stops tracking after that point.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return h.Hijack()
}

// Unwrap exposes the wrapped writer so http.ResponseController can find
// optional interfaces the wrapper does not forward.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
