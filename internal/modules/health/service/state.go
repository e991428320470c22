package service

import (
	"sync/atomic"
	"time"
)

// State — атомарные флаги живости пайплайна: подключены ли оба фида
// и когда пришло последнее событие.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	klineConnected atomic.Bool
	alertConnected atomic.Bool
	lastEventUnix  atomic.Int64 // unix seconds
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetKlineConnected(v bool) { s.klineConnected.Store(v) }
func (s *State) KlineConnected() bool     { return s.klineConnected.Load() }

func (s *State) SetAlertConnected(v bool) { s.alertConnected.Store(v) }
func (s *State) AlertConnected() bool     { return s.alertConnected.Load() }

func (s *State) TouchEvent(t time.Time) { s.lastEventUnix.Store(t.Unix()) }
func (s *State) LastEvent() time.Time {
	u := s.lastEventUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
