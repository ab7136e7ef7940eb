package fuel

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"naftwatch.dz/fuel-monitor-service/pkg/common"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

type ChangeOp string

const (
	OpInsert ChangeOp = "insert"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

const (
	TableStations = "stations"
	TableAlerts   = "alertes"
)

// ChangeEvent is one row change on the store, stamped with the store's own
// write timestamp. Conflicts resolve on that timestamp, never on delivery
// order.
type ChangeEvent struct {
	Table     string          `json:"table"`
	Op        ChangeOp        `json:"op"`
	ID        uint            `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Station   *models.Station `json:"station,omitempty"`
	Alert     *models.Alert   `json:"alert,omitempty"`
}

// Subscription receives change events. When the bus cannot keep the buffer
// drained the subscription is flagged lost and stops receiving; the owner
// must resubscribe and resync.
type Subscription struct {
	C        chan ChangeEvent
	lost     chan struct{}
	lostOnce sync.Once
}

func (s *Subscription) Lost() <-chan struct{} {
	return s.lost
}

func (s *Subscription) markLost() {
	s.lostOnce.Do(func() { close(s.lost) })
}

// Bus fans change events out to subscribers: one reconciliation entry point
// shared by every live view instead of per-page refetching.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

func (b *Bus) Subscribe(buffer int) *Subscription {
	sub := &Subscription{
		C:    make(chan ChangeEvent, buffer),
		lost: make(chan struct{}),
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[sub] = struct{}{}
	return sub
}

func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, sub)
}

// SubscriberCount reports how many live subscriptions the bus carries.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish never blocks the writer: a subscriber that cannot keep up is
// dropped and flagged lost rather than stalling store writes.
func (b *Bus) Publish(ev ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.C <- ev:
		default:
			delete(b.subs, sub)
			sub.markLost()
		}
	}
}

func (m *Monitor) publish(ev ChangeEvent) {
	if m.Bus != nil {
		m.Bus.Publish(ev)
	}
}

// Synchronizer keeps a scope-filtered materialized copy of stations and
// alerts current against the change feed, so severity classification and
// alert ranking read fresh data without full reloads.
type Synchronizer struct {
	mon   *Monitor
	scope Scope

	mu       sync.Mutex
	stations map[uint]models.Station
	alerts   map[uint]models.Alert
	stale    bool
}

func (m *Monitor) NewSynchronizer(scope Scope) (*Synchronizer, error) {
	s := &Synchronizer{
		mon:      m,
		scope:    scope,
		stations: make(map[uint]models.Station),
		alerts:   make(map[uint]models.Alert),
	}
	if err := s.Resync(); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply patches the local copy with one event. Events for rows outside the
// scope are ignored; events older than the local row (by store timestamp)
// are discarded as stale. Returns ErrSyncStale once the feed has dropped
// events, at which point only Resync restores correctness.
func (s *Synchronizer) Apply(ev ChangeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale {
		return ErrSyncStale
	}

	switch ev.Table {
	case TableStations:
		if ev.Op == OpDelete {
			delete(s.stations, ev.ID)
			return nil
		}
		if ev.Station == nil || !s.scope.AllowsStation(ev.Station) {
			return nil
		}
		if existing, ok := s.stations[ev.ID]; ok && existing.UpdatedAt.After(ev.Timestamp) {
			return nil
		}
		s.stations[ev.ID] = *ev.Station

	case TableAlerts:
		if ev.Op == OpDelete {
			delete(s.alerts, ev.ID)
			return nil
		}
		if ev.Alert == nil || !s.scope.AllowsAlert(ev.Alert) {
			return nil
		}
		if existing, ok := s.alerts[ev.ID]; ok && existing.UpdatedAt.After(ev.Timestamp) {
			return nil
		}
		s.alerts[ev.ID] = *ev.Alert
	}

	return nil
}

// MarkStale records that the feed dropped events for this view.
func (s *Synchronizer) MarkStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = true
}

// Resync rebuilds the materialized copy from the store, the mandatory
// recovery path after a dropped subscription.
func (s *Synchronizer) Resync() error {
	var stations []models.Station
	if err := s.scope.FilterStations(s.mon.Db.Conn).Find(&stations).Error; err != nil {
		return err
	}
	var alerts []models.Alert
	if err := s.scope.FilterAlerts(s.mon.Db.Conn).Find(&alerts).Error; err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stations = make(map[uint]models.Station, len(stations))
	for i := range stations {
		s.stations[stations[i].ID] = stations[i]
	}
	s.alerts = make(map[uint]models.Alert, len(alerts))
	for i := range alerts {
		s.alerts[alerts[i].ID] = alerts[i]
	}
	s.stale = false
	return nil
}

// Stations returns the materialized stations ordered by id.
func (s *Synchronizer) Stations() []models.Station {
	s.mu.Lock()
	defer s.mu.Unlock()
	stations := make([]models.Station, 0, len(s.stations))
	for _, st := range s.stations {
		stations = append(stations, st)
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })
	return stations
}

// Alerts returns the materialized alerts in display ranking order.
func (s *Synchronizer) Alerts() []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	alerts := make([]models.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		alerts = append(alerts, a)
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].ID < alerts[j].ID })
	return Rank(alerts)
}

// Snapshot is the render-ready view of the local copy: stations ordered by
// id, alerts in display ranking order.
type Snapshot struct {
	Stations []models.Station `json:"stations"`
	Alerts   []models.Alert   `json:"alerts"`
}

func (s *Synchronizer) Snapshot() Snapshot {
	return Snapshot{Stations: s.Stations(), Alerts: s.Alerts()}
}

// ActiveAlertCount is the dashboard badge count over the local copy.
func (s *Synchronizer) ActiveAlertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, a := range s.alerts {
		if !a.Resolved {
			count++
		}
	}
	return count
}

// Run consumes the monitor's change bus until ctx is cancelled. A lost
// subscription triggers a full resync before resubscribing; cancellation
// unsubscribes so no orphan subscription outlives the view.
func (s *Synchronizer) Run(ctx context.Context) {
	logger := common.GetLoggerWith(
		common.LoggerNameFuelCore,
		zap.String(common.LoggerFieldFuelCategory, common.LoggerCategorySync),
	)

	for {
		// subscribe before resync so no write lands between the two; the
		// resync is unconditional because writes published before the
		// subscription existed (including between construction and Run)
		// reached nobody
		sub := s.mon.Bus.Subscribe(64)

		if err := s.Resync(); err != nil {
			logger.Error("Resync failed", zap.Error(err))
			s.mon.Bus.Unsubscribe(sub)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		for {
			select {
			case <-ctx.Done():
				s.mon.Bus.Unsubscribe(sub)
				return
			case <-sub.Lost():
				logger.Warn("Subscription lost, resyncing")
				s.MarkStale()
			case ev := <-sub.C:
				if err := s.Apply(ev); err != nil {
					logger.Warn("Apply failed, resyncing", zap.Error(err))
					s.MarkStale()
				} else {
					continue
				}
			}
			break
		}

		s.mon.Bus.Unsubscribe(sub)
	}
}
