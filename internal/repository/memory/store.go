// Package memory is an in-process implementation of the repository contracts.
// It mirrors the PostgreSQL schema rules (foreign keys, cascades, the active
// assignment unique index) so services can be exercised without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/maxviazov/player-roster-service/internal/model"
)

// Store holds every table behind one lock so cascades stay atomic.
type Store struct {
	mu    sync.RWMutex
	clock clock.Clock

	players     map[int64]model.Player
	teamPlayers map[int64]model.TeamPlayer
	statistics  map[int64]model.PlayerStatistic

	playerSeq, teamPlayerSeq, statisticSeq int64

	// txMu serialises WithinTx callers; plain calls outside a transaction do not take it.
	// A failed transaction rolls back only the rows in its undoLog.
	txMu sync.Mutex
}

func NewStore(c clock.Clock) *Store {
	return &Store{
		clock:       c,
		players:     make(map[int64]model.Player),
		teamPlayers: make(map[int64]model.TeamPlayer),
		statistics:  make(map[int64]model.PlayerStatistic),
	}
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// undoLog remembers the pre-transaction version of every row a transaction
// writes. A nil entry means the row did not exist. Rows the transaction never
// touched are left alone on rollback, so concurrent plain writes survive.
type undoLog struct {
	players     map[int64]*model.Player
	teamPlayers map[int64]*model.TeamPlayer
	statistics  map[int64]*model.PlayerStatistic
}

func newUndoLog() *undoLog {
	return &undoLog{
		players:     make(map[int64]*model.Player),
		teamPlayers: make(map[int64]*model.TeamPlayer),
		statistics:  make(map[int64]*model.PlayerStatistic),
	}
}

// undoFrom returns the log of the transaction running in ctx, or nil outside one.
func undoFrom(ctx context.Context) *undoLog {
	u, _ := ctx.Value(txKey{}).(*undoLog)
	return u
}

// The save methods are no-ops on a nil log. Caller holds mu.

func (u *undoLog) savePlayer(s *Store, id int64) {
	if u == nil {
		return
	}
	if _, seen := u.players[id]; seen {
		return
	}
	u.players[id] = nil
	if cur, ok := s.players[id]; ok {
		c := clonePlayer(cur)
		u.players[id] = &c
	}
}

func (u *undoLog) saveTeamPlayer(s *Store, id int64) {
	if u == nil {
		return
	}
	if _, seen := u.teamPlayers[id]; seen {
		return
	}
	u.teamPlayers[id] = nil
	if cur, ok := s.teamPlayers[id]; ok {
		c := cloneTeamPlayer(cur)
		u.teamPlayers[id] = &c
	}
}

func (u *undoLog) saveStatistic(s *Store, id int64) {
	if u == nil {
		return
	}
	if _, seen := u.statistics[id]; seen {
		return
	}
	u.statistics[id] = nil
	if cur, ok := s.statistics[id]; ok {
		c := cloneStatistic(cur)
		u.statistics[id] = &c
	}
}

// rollback puts every logged row back. Sequences are not rewound, like BIGSERIAL.
func (u *undoLog) rollback(s *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, prev := range u.players {
		if prev == nil {
			delete(s.players, id)
			continue
		}
		s.players[id] = *prev
	}
	for id, prev := range u.teamPlayers {
		if prev == nil {
			delete(s.teamPlayers, id)
			continue
		}
		s.teamPlayers[id] = *prev
	}
	for id, prev := range u.statistics {
		if prev == nil {
			delete(s.statistics, id)
			continue
		}
		s.statistics[id] = *prev
	}
}

// deletePlayerLocked removes the player and cascades to its assignments. Caller holds mu.
func (s *Store) deletePlayerLocked(u *undoLog, id int64) bool {
	if _, ok := s.players[id]; !ok {
		return false
	}
	u.savePlayer(s, id)
	delete(s.players, id)
	for tpID, tp := range s.teamPlayers {
		if tp.PlayerID == id {
			s.deleteTeamPlayerLocked(u, tpID)
		}
	}
	return true
}

// deleteTeamPlayerLocked removes the assignment and its statistics. Caller holds mu.
func (s *Store) deleteTeamPlayerLocked(u *undoLog, id int64) bool {
	if _, ok := s.teamPlayers[id]; !ok {
		return false
	}
	u.saveTeamPlayer(s, id)
	delete(s.teamPlayers, id)
	for sID, st := range s.statistics {
		if st.TeamPlayerID == id {
			u.saveStatistic(s, sID)
			delete(s.statistics, sID)
		}
	}
	return true
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneAudit(a model.Audit) model.Audit {
	a.UpdatedAt = cloneTime(a.UpdatedAt)
	a.UpdatedBy = cloneString(a.UpdatedBy)
	return a
}

func clonePlayer(p model.Player) model.Player {
	p.Gender = cloneString(p.Gender)
	p.PhotoURL = cloneString(p.PhotoURL)
	p.Audit = cloneAudit(p.Audit)
	return p
}

func cloneTeamPlayer(tp model.TeamPlayer) model.TeamPlayer {
	tp.LeftDate = cloneTime(tp.LeftDate)
	tp.Audit = cloneAudit(tp.Audit)
	tp.Player = nil
	return tp
}

func cloneStatistic(st model.PlayerStatistic) model.PlayerStatistic {
	st.Audit = cloneAudit(st.Audit)
	return st
}
