package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/store"
)

const (
	// StorageKey is the single key the record lives under.
	StorageKey = "shindan_user_data"

	// DefaultStorageLimit is the ceiling at which old history is evicted.
	DefaultStorageLimit int64 = 5 * 1024 * 1024

	// DiagnosisPoints is awarded for each newly recorded diagnosis.
	DiagnosisPoints = 10
)

// Options configures a Manager.
type Options struct {
	// StorageLimit is the footprint at or above which a write evicts old
	// history first. Zero means DefaultStorageLimit.
	StorageLimit int64

	Logger *zap.Logger

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Manager is the only component that reads or writes the persisted record.
// Every mutation is a read, modify, write sequence with no locking across
// steps: two managers sharing a store can lose each other's updates. Only
// the create-or-repair path of Read is serialized, so concurrent first reads
// on one manager agree on a single record.
type Manager struct {
	mu    sync.Mutex
	kv    store.KV
	limit int64
	log   *zap.Logger
	clock func() time.Time
}

// NewManager returns a Manager backed by kv. A nil kv yields a manager whose
// operations all fail with ErrStorageUnavailable.
func NewManager(kv store.KV, opts Options) *Manager {
	m := &Manager{
		kv:    kv,
		limit: opts.StorageLimit,
		log:   opts.Logger,
		clock: opts.Now,
	}
	if m.limit <= 0 {
		m.limit = DefaultStorageLimit
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	return m
}

// Now returns the manager's clock reading in UTC at millisecond precision.
func (m *Manager) Now() time.Time {
	return m.clock().UTC().Truncate(time.Millisecond)
}

// Read returns the current record, creating and persisting a fresh one when
// none exists or the stored one is corrupt.
func (m *Manager) Read(ctx context.Context) (*UserData, error) {
	if m.kv == nil {
		return nil, ErrStorageUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok, err := m.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read user data: %w", err)
	}
	if !ok {
		return m.create(ctx), nil
	}

	ud, dropped, err := ValidateAndRepair([]byte(raw), m.fresh)
	switch {
	case err != nil:
		m.log.Warn("invalid user data detected, creating new record", zap.Error(err))
		if err := m.kv.Remove(ctx, StorageKey); err != nil {
			m.log.Warn("remove invalid user data", zap.Error(err))
		}
		m.persist(ctx, ud)
	case dropped > 0:
		m.log.Warn("dropped unreadable history entries", zap.Int("entries", dropped))
		m.persist(ctx, ud)
	}
	return ud, nil
}

func (m *Manager) fresh() *UserData {
	return NewUserData(uuid.NewString(), m.Now())
}

func (m *Manager) create(ctx context.Context) *UserData {
	ud := m.fresh()
	m.persist(ctx, ud)
	return ud
}

// persist saves a newly created or repaired record. A failure here is not
// fatal: the record is still usable in memory and the next mutation retries
// the save.
func (m *Manager) persist(ctx context.Context, ud *UserData) {
	if err := m.Write(ctx, ud); err != nil {
		m.log.Warn("persist new user data", zap.Error(err))
	}
}

// Write stamps ud with the current time and saves it. When the store is at
// or near its ceiling, old history is evicted before serializing.
func (m *Manager) Write(ctx context.Context, ud *UserData) error {
	if m.kv == nil {
		return ErrStorageUnavailable
	}

	ud.UpdatedAt = m.Now()
	data, err := json.Marshal(ud)
	if err != nil {
		return fmt.Errorf("encode user data: %w", err)
	}

	full, err := m.nearLimit(ctx, string(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if full && trim(ud) {
		m.log.Info("storage near limit, evicted old history",
			zap.Int("diagnoses", len(ud.CompletedDiagnoses)),
			zap.Int("rewards", len(ud.UnlockedRewards)),
		)
		if data, err = json.Marshal(ud); err != nil {
			return fmt.Errorf("encode user data: %w", err)
		}
	}

	if err := m.kv.Set(ctx, StorageKey, string(data)); err != nil {
		m.log.Error("save user data", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

func (m *Manager) nearLimit(ctx context.Context, value string) (bool, error) {
	entries, err := m.kv.Entries(ctx)
	if err != nil {
		return false, err
	}
	return store.ProjectedFootprint(entries, StorageKey, value) >= m.limit, nil
}

// AddDiagnosis records d and awards DiagnosisPoints. Adding a diagnosis
// whose ID is already stored changes nothing.
func (m *Manager) AddDiagnosis(ctx context.Context, d Diagnosis) error {
	ud, err := m.Read(ctx)
	if err != nil {
		return err
	}
	if _, exists := ud.Diagnosis(d.ID); exists {
		m.log.Debug("diagnosis already recorded", zap.String("id", d.ID))
		return nil
	}
	ud.CompletedDiagnoses = append(ud.CompletedDiagnoses, d)
	ud.Points += DiagnosisPoints
	return m.Write(ctx, ud)
}

// AddReward stores r under a newly generated unique ID derived from r.ID
// and returns the stored reward.
func (m *Manager) AddReward(ctx context.Context, r Reward) (Reward, error) {
	ud, err := m.Read(ctx)
	if err != nil {
		return Reward{}, err
	}
	now := m.Now()
	r.ID = fmt.Sprintf("%s_%d_%s", r.ID, now.UnixMilli(), uuid.NewString()[:8])
	r.UnlockedAt = now
	ud.UnlockedRewards = append(ud.UnlockedRewards, r)
	if err := m.Write(ctx, ud); err != nil {
		return Reward{}, err
	}
	return r, nil
}

// UpdatePoints replaces the point balance.
func (m *Manager) UpdatePoints(ctx context.Context, points int) error {
	ud, err := m.Read(ctx)
	if err != nil {
		return err
	}
	ud.Points = points
	return m.Write(ctx, ud)
}

// RemoveDiagnosis deletes the diagnosis with id. Points are not refunded.
func (m *Manager) RemoveDiagnosis(ctx context.Context, id string) error {
	_, err := m.RemoveDiagnoses(ctx, []string{id})
	return err
}

// RemoveDiagnoses deletes every diagnosis whose ID is in ids and returns how
// many were removed. IDs that are not stored are ignored.
func (m *Manager) RemoveDiagnoses(ctx context.Context, ids []string) (int, error) {
	ud, err := m.Read(ctx)
	if err != nil {
		return 0, err
	}
	before := len(ud.CompletedDiagnoses)
	ud.CompletedDiagnoses = slices.DeleteFunc(ud.CompletedDiagnoses, func(d Diagnosis) bool {
		return slices.Contains(ids, d.ID)
	})
	if err := m.Write(ctx, ud); err != nil {
		return 0, err
	}
	return before - len(ud.CompletedDiagnoses), nil
}

// Clear deletes the record. The next Read creates a fresh one.
func (m *Manager) Clear(ctx context.Context) error {
	if m.kv == nil {
		return ErrStorageUnavailable
	}
	if err := m.kv.Remove(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear user data: %w", err)
	}
	return nil
}

// Export returns the current record as indented JSON.
func (m *Manager) Export(ctx context.Context) (string, error) {
	ud, err := m.Read(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(ud, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return string(data), nil
}

// Import replaces the record with the one encoded in text. Only JSON
// decoding is checked; a record of the wrong shape is repaired by the next
// Read.
func (m *Manager) Import(ctx context.Context, text string) error {
	var ud UserData
	if err := json.Unmarshal([]byte(text), &ud); err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	return m.Write(ctx, &ud)
}
