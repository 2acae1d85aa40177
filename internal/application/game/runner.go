package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/homestead-go/internal/adapters/metrics"
	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Runner executes game operations one at a time against a single clock.
//
// Each operation gets a fresh Session inside one transaction: the houses it touches are
// settled to the operation's instant, the operation applies its effect, and the working set
// is flushed. Any error rolls the whole transaction back. Events are published only after
// the commit.
type Runner struct {
	mu         sync.Mutex
	uow        UnitOfWork
	table      *settings.Table
	clock      shared.Clock
	admin      shared.Address
	publishers []event.Publisher
	last       time.Time
}

// NewRunner creates a runner. The admin address is the only actor allowed to run
// admin operations; a zero admin disables them.
func NewRunner(
	uow UnitOfWork,
	table *settings.Table,
	clock shared.Clock,
	admin shared.Address,
	publishers ...event.Publisher,
) *Runner {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Runner{
		uow:        uow,
		table:      table,
		clock:      clock,
		admin:      admin,
		publishers: publishers,
	}
}

// Table returns the configuration table the runner applies
func (r *Runner) Table() *settings.Table {
	return r.table
}

// Admin returns the admin address
func (r *Runner) Admin() shared.Address {
	return r.admin
}

// tick returns the operation instant. The clock may be read out of order by callers, but
// the game never goes back in time.
func (r *Runner) tick() time.Time {
	now := r.clock.Now()
	if now.Before(r.last) {
		now = r.last
	}
	r.last = now
	return now
}

// Execute runs fn as one atomic operation named op on behalf of actor.
func (r *Runner) Execute(ctx context.Context, op string, actor shared.Address, fn func(s *Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := common.LoggerFromContext(ctx)
	now := r.tick()

	var committed *Session
	err := r.uow.Do(ctx, func(ctx context.Context, stores Stores) error {
		s := newSession(ctx, stores, r.table, now, actor, r.admin)
		if err := fn(s); err != nil {
			return err
		}
		if err := s.flush(); err != nil {
			return fmt.Errorf("failed to persist %s: %w", op, err)
		}
		committed = s
		return nil
	})
	if err != nil {
		logger.Log("DEBUG", fmt.Sprintf("[%s] rejected: %v", op, err), map[string]interface{}{
			"actor": actor.String(),
			"kind":  string(shared.KindOf(err)),
		})
		return err
	}

	logger.Log("INFO", fmt.Sprintf("[%s] committed", op), map[string]interface{}{
		"actor":   actor.String(),
		"events":  len(committed.events),
		"entries": len(committed.entries),
	})
	r.record(committed)
	r.publish(ctx, committed.events)
	return nil
}

// View runs fn against settled state without persisting anything. The settlement it sees
// is exactly what a mutating operation at the same instant would apply.
func (r *Runner) View(ctx context.Context, actor shared.Address, fn func(s *Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.tick()
	return r.uow.Do(ctx, func(ctx context.Context, stores Stores) error {
		return fn(newSession(ctx, stores, r.table, now, actor, r.admin))
	})
}

func (r *Runner) record(s *Session) {
	metrics.RecordSettlement(s.settledN)
	for _, e := range s.entries {
		delta := e.Delta()
		for _, kind := range resource.AllKinds() {
			if !delta[kind].IsZero() {
				metrics.RecordResourceFlow(e.EntryType().String(), e.Category().String(), kind.String(), delta[kind].InexactFloat64())
			}
		}
	}
	for _, h := range s.harvests {
		metrics.RecordTokenHarvest(h.rare, h.token.InexactFloat64())
		if h.died {
			metrics.RecordHouseDied(h.rare)
		}
	}
	for _, e := range s.events {
		metrics.RecordEvent(string(e.Type))
	}
}

func (r *Runner) publish(ctx context.Context, events []*event.Event) {
	if len(events) == 0 {
		return
	}
	logger := common.LoggerFromContext(ctx)
	for _, p := range r.publishers {
		if err := p.Publish(ctx, events); err != nil {
			logger.Log("ERROR", fmt.Sprintf("failed to publish %d events: %v", len(events), err), nil)
		}
	}
}
