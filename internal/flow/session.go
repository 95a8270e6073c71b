package flow

import (
	"sync"

	"DrillReportBot/internal/report"
)

// Session holds the conversation state of one user. The surrounding
// transport may deliver overlapping updates for the same user (a rapid
// double-tap), so every turn locks mu before touching the record.
type Session struct {
	mu sync.Mutex

	Step        Step
	Report      *report.Report
	Current     report.ShiftKind // shift actively being filled, "" outside shifts
	EditTarget  EditTarget
	NotesBudget int
}

// newSession returns a fresh session positioned at the first prompt with
// all report fields reset.
func newSession() *Session {
	return &Session{
		Step:   StepRegion,
		Report: report.New(),
	}
}

// shift returns the record of the shift currently being filled.
func (s *Session) shift() *report.ShiftRecord {
	return s.Report.Shift(s.Current)
}

// Store keeps live sessions keyed by Telegram user ID. One live session
// per user; starting over replaces it unconditionally. Entries are never
// evicted automatically — an abandoned conversation simply sits until the
// user starts again.
type Store struct {
	mu   sync.RWMutex
	data map[int64]*Session
}

func newStore() *Store {
	return &Store{data: make(map[int64]*Session)}
}

func (s *Store) get(userID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.data[userID]
	return sess, ok
}

func (s *Store) put(userID int64, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = sess
}

func (s *Store) delete(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[userID]
	delete(s.data, userID)
	return ok
}
