package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/productboard/product"
	"github.com/jpalmerr/productboard/view"
)

const (
	// ClientIDHeader carries the dashboard client id in responses.
	ClientIDHeader = "X-Client-ID"

	// clientIDParam is the query parameter identifying a dashboard client.
	clientIDParam = "client"

	// maxClientIDLength bounds ids supplied by clients.
	maxClientIDLength = 64

	// sessionIdleTimeout is how long a client without an open event stream
	// keeps its filters.
	sessionIdleTimeout = 30 * time.Minute
)

// session holds the view params of one dashboard client (one browser tab).
// Product data, fetch status and health are shared by all sessions.
type session struct {
	params   product.Params
	lastSeq  uint64
	streams  int
	lastSeen time.Time
}

// sessions tracks per-client params.
type sessions struct {
	mu    sync.Mutex
	byID  map[string]*session
	now   func() time.Time
	newID func() string
}

func newSessions() *sessions {
	return &sessions{
		byID:  make(map[string]*session),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// attach returns the id of the session for the requested id, creating the
// session when it does not exist yet. created reports whether it did. An
// empty or oversized id is replaced with a new one.
func (s *sessions) attach(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if id == "" || len(id) > maxClientIDLength {
		id = s.newID()
	}
	if sess, ok := s.byID[id]; ok {
		sess.lastSeen = now
		return id, false
	}

	s.pruneLocked(now)
	s.byID[id] = &session{params: product.ClearedParams(), lastSeen: now}
	return id, true
}

// params returns the params of id, or cleared params for an unknown id.
func (s *sessions) params(id string) product.Params {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.byID[id]; ok {
		return sess.params
	}
	return product.ClearedParams()
}

// apply reduces a param action into the session of id and returns the
// resulting params.
//
// seq orders actions of one client. An action whose seq is not greater
// than the last applied one arrived out of order and is dropped; seq 0
// is always applied.
func (s *sessions) apply(id string, seq uint64, action view.Action) product.Params {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		sess = &session{params: product.ClearedParams()}
		s.byID[id] = sess
	}
	sess.lastSeen = s.now()

	if seq != 0 {
		if seq <= sess.lastSeq {
			return sess.params
		}
		sess.lastSeq = seq
	}

	sess.params = view.Reduce(view.Initial().WithParams(sess.params), action).Params()
	return sess.params
}

// open and close count event streams; a session with an open stream is
// never pruned.
func (s *sessions) open(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byID[id]; ok {
		sess.streams++
		sess.lastSeen = s.now()
	}
}

func (s *sessions) close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byID[id]; ok {
		sess.streams--
		sess.lastSeen = s.now()
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *sessions) pruneLocked(now time.Time) {
	for id, sess := range s.byID {
		if sess.streams == 0 && now.Sub(sess.lastSeen) > sessionIdleTimeout {
			delete(s.byID, id)
		}
	}
}
