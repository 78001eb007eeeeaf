package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abhisek/shindan/internal/aptitude"
	"github.com/abhisek/shindan/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeClock advances one second per reading.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestManager(t *testing.T, kv store.KV, limit int64) *Manager {
	t.Helper()
	clk := &fakeClock{t: epoch}
	return NewManager(kv, Options{StorageLimit: limit, Now: clk.Now})
}

func diag(id string, at time.Time) Diagnosis {
	answers := []aptitude.Answer{
		{QuestionID: "q1", Value: aptitude.StringValue("creative"), AnsweredAt: at},
		{QuestionID: "q3", Value: aptitude.NumberValue(4), AnsweredAt: at},
	}
	return Diagnosis{
		ID:          id,
		Type:        TypeJobAptitude,
		Answers:     answers,
		Result:      aptitude.ComputeResult(answers),
		CompletedAt: at,
	}
}

func TestRead_CreatesAndPersistsFreshRecord(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory(store.Options{})
	m := newTestManager(t, kv, 0)

	ud, err := m.Read(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, ud.UserID)
	assert.Empty(t, ud.CompletedDiagnoses)
	assert.NotNil(t, ud.CompletedDiagnoses)
	assert.Empty(t, ud.UnlockedRewards)
	assert.Zero(t, ud.Points)
	assert.Equal(t, DefaultPreferences(), ud.Preferences)

	_, ok, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.True(t, ok, "fresh record should be saved immediately")

	again, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, ud.UserID, again.UserID)
}

func TestRead_ConcurrentFirstReadsShareRecord(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory(store.Options{})
	m := NewManager(kv, Options{})

	const readers = 8
	ids := make(chan string, readers)
	var wg sync.WaitGroup
	for range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ud, err := m.Read(ctx)
			if err != nil {
				t.Errorf("Read: %v", err)
				return
			}
			ids <- ud.UserID
		}()
	}
	wg.Wait()
	close(ids)

	stored, err := m.Read(ctx)
	require.NoError(t, err)
	for id := range ids {
		assert.Equal(t, stored.UserID, id)
	}
}

func TestRead_RepairsCorruptRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"array", "[]"},
		{"missing userId", `{"completedDiagnoses":[],"points":0,"unlockedRewards":[],"preferences":{},"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`},
		{"diagnoses not array", `{"userId":"u","completedDiagnoses":{},"points":0,"unlockedRewards":[],"preferences":{},"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`},
		{"points not number", `{"userId":"u","completedDiagnoses":[],"points":"ten","unlockedRewards":[],"preferences":{},"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`},
		{"null rewards", `{"userId":"u","completedDiagnoses":[],"points":0,"unlockedRewards":null,"preferences":{},"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`},
		{"fractional points", `{"userId":"u","completedDiagnoses":[],"points":1.5,"unlockedRewards":[],"preferences":{},"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`},
		{"diagnosis not object", `{"userId":"u","completedDiagnoses":[7],"points":0,"unlockedRewards":[],"preferences":{},"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := store.NewMemory(store.Options{})
			require.NoError(t, kv.Set(ctx, StorageKey, tt.raw))
			m := newTestManager(t, kv, 0)

			ud, err := m.Read(ctx)
			require.NoError(t, err)
			assert.NotEqual(t, "u", ud.UserID)
			assert.Zero(t, ud.Points)

			raw, ok, err := kv.Get(ctx, StorageKey)
			require.NoError(t, err)
			require.True(t, ok)
			_, dropped, err := Validate([]byte(raw))
			assert.NoError(t, err, "repaired record should be valid")
			assert.Zero(t, dropped)
		})
	}
}

func TestRead_KeepsRecordWithUnreadableEntries(t *testing.T) {
	good, err := json.Marshal(diag("good", epoch))
	require.NoError(t, err)
	reward := `{"id":"sticker_1","type":"novelty","title":"Sticker","description":"d","unlockedAt":"2026-01-01T00:00:00Z"}`

	tests := []struct {
		name        string
		diagnoses   string
		rewards     string
		createdAt   string
		wantDiag    []string
		wantRewards int
	}{
		{
			name:        "boolean answer value",
			diagnoses:   fmt.Sprintf(`[%s,{"id":"bad","type":"job-aptitude","answers":[{"questionId":"q1","value":true,"answeredAt":"2026-01-01T00:00:00Z"}],"result":{},"completedAt":"2026-01-01T00:00:00Z"}]`, good),
			rewards:     "[" + reward + "]",
			createdAt:   "2026-01-01T00:00:00Z",
			wantDiag:    []string{"good"},
			wantRewards: 1,
		},
		{
			name:        "empty completedAt",
			diagnoses:   fmt.Sprintf(`[{"id":"bad","type":"job-aptitude","answers":[],"result":{},"completedAt":""},%s]`, good),
			rewards:     "[" + reward + "]",
			createdAt:   "2026-01-01T00:00:00Z",
			wantDiag:    []string{"good"},
			wantRewards: 1,
		},
		{
			name:        "unreadable reward",
			diagnoses:   fmt.Sprintf(`[%s]`, good),
			rewards:     `[{"id":"x","unlockedAt":42},` + reward + "]",
			createdAt:   "2026-01-01T00:00:00Z",
			wantDiag:    []string{"good"},
			wantRewards: 1,
		},
		{
			name:        "unreadable createdAt",
			diagnoses:   fmt.Sprintf(`[%s]`, good),
			rewards:     "[]",
			createdAt:   "yesterday",
			wantDiag:    []string{"good"},
			wantRewards: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := store.NewMemory(store.Options{})
			raw := fmt.Sprintf(`{"userId":"u","completedDiagnoses":%s,"points":30,"unlockedRewards":%s,"preferences":{"theme":"dark"},"createdAt":%q,"updatedAt":"2026-01-01T00:00:00Z"}`,
				tt.diagnoses, tt.rewards, tt.createdAt)
			require.NoError(t, kv.Set(ctx, StorageKey, raw))
			m := newTestManager(t, kv, 0)

			ud, err := m.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, "u", ud.UserID)
			assert.Equal(t, 30, ud.Points)
			assert.Equal(t, ThemeDark, ud.Preferences.Theme)
			assert.Len(t, ud.UnlockedRewards, tt.wantRewards)

			var got []string
			for _, d := range ud.CompletedDiagnoses {
				got = append(got, d.ID)
			}
			assert.Equal(t, tt.wantDiag, got)

			stored, _, err := kv.Get(ctx, StorageKey)
			require.NoError(t, err)
			_, dropped, err := Validate([]byte(stored))
			require.NoError(t, err)
			assert.Zero(t, dropped, "cleaned record should be saved back")
		})
	}
}

func TestValidate_PreferencesFallBack(t *testing.T) {
	raw := `{"userId":"u","completedDiagnoses":[],"points":0,"unlockedRewards":[],"preferences":{"theme":3},"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`
	ud, dropped, err := Validate([]byte(raw))
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, DefaultPreferences(), ud.Preferences)
}

func TestValidateAndRepair_KeepsValidRecord(t *testing.T) {
	ud := NewUserData("keep-me", epoch)
	ud.Points = 40
	raw, err := json.Marshal(ud)
	require.NoError(t, err)

	called := false
	got, dropped, err := ValidateAndRepair(raw, func() *UserData {
		called = true
		return NewUserData("fresh", epoch)
	})
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.False(t, called)
	assert.Equal(t, "keep-me", got.UserID)
	assert.Equal(t, 40, got.Points)
}

func TestValidateAndRepair_ReportsReason(t *testing.T) {
	got, _, err := ValidateAndRepair([]byte(`{"userId":5}`), func() *UserData {
		return NewUserData("fresh", epoch)
	})
	require.Error(t, err)
	var corrupt *CorruptRecordError
	assert.ErrorAs(t, err, &corrupt)
	assert.Equal(t, "fresh", got.UserID)
}

func TestAddDiagnosis_Idempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory(store.Options{}), 0)
	d := diag("d1", epoch)

	require.NoError(t, m.AddDiagnosis(ctx, d))
	require.NoError(t, m.AddDiagnosis(ctx, d))

	ud, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, ud.CompletedDiagnoses, 1)
	assert.Equal(t, DiagnosisPoints, ud.Points)
}

func TestWrite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory(store.Options{})
	m := newTestManager(t, kv, 0)

	ud, err := m.Read(ctx)
	require.NoError(t, err)
	ud.CompletedDiagnoses = append(ud.CompletedDiagnoses, diag("d1", epoch), diag("d2", epoch.Add(time.Hour)))
	ud.Points = 70
	ud.UnlockedRewards = append(ud.UnlockedRewards, Reward{
		ID: "r1", Type: RewardNovelty, Title: "Sticker", Description: "A sticker", UnlockedAt: epoch,
	})
	require.NoError(t, m.Write(ctx, ud))

	got, err := m.Read(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(ud, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_UpdatesTimestamp(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory(store.Options{}), 0)

	ud, err := m.Read(ctx)
	require.NoError(t, err)
	before := ud.UpdatedAt
	require.NoError(t, m.Write(ctx, ud))
	assert.True(t, ud.UpdatedAt.After(before))
	assert.Equal(t, time.UTC, ud.UpdatedAt.Location())
}

func TestWrite_EvictsNearLimit(t *testing.T) {
	ctx := context.Background()
	// A limit of one byte puts every write at the ceiling.
	m := newTestManager(t, store.NewMemory(store.Options{}), 1)

	for i := range 11 {
		require.NoError(t, m.AddDiagnosis(ctx, diag(fmt.Sprintf("d%02d", i), epoch.Add(time.Duration(i)*time.Hour))))
	}

	ud, err := m.Read(ctx)
	require.NoError(t, err)
	require.Len(t, ud.CompletedDiagnoses, KeepDiagnoses)
	_, oldest := ud.Diagnosis("d00")
	assert.False(t, oldest, "oldest diagnosis should be evicted")
	_, newest := ud.Diagnosis("d10")
	assert.True(t, newest)
	assert.Equal(t, 11*DiagnosisPoints, ud.Points, "eviction does not refund points")
}

func TestWrite_NoEvictionBelowLimit(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory(store.Options{}), 0)

	for i := range 12 {
		require.NoError(t, m.AddDiagnosis(ctx, diag(fmt.Sprintf("d%02d", i), epoch.Add(time.Duration(i)*time.Hour))))
	}

	ud, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, ud.CompletedDiagnoses, 12)
}

func TestTrim_Rewards(t *testing.T) {
	ud := NewUserData("u", epoch)
	for i := range 25 {
		ud.UnlockedRewards = append(ud.UnlockedRewards, Reward{
			ID:         fmt.Sprintf("r%02d", i),
			UnlockedAt: epoch.Add(time.Duration(i) * time.Minute),
		})
	}
	assert.True(t, trim(ud))
	require.Len(t, ud.UnlockedRewards, KeepRewards)
	assert.Equal(t, "r24", ud.UnlockedRewards[0].ID)
	assert.Equal(t, "r05", ud.UnlockedRewards[KeepRewards-1].ID)

	assert.False(t, trim(ud), "second trim is a no-op")
}

func TestWrite_QuotaFailureKeepsPreviousRecord(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory(store.Options{Quota: 2048})
	m := newTestManager(t, kv, 0)

	ud, err := m.Read(ctx)
	require.NoError(t, err)
	ud.Points = 30
	require.NoError(t, m.Write(ctx, ud))

	ud.Points = 99
	ud.UnlockedRewards = append(ud.UnlockedRewards, Reward{ID: "big", Description: strings.Repeat("x", 4096)})
	err = m.Write(ctx, ud)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteFailed))
	assert.True(t, errors.Is(err, store.ErrQuotaExceeded))

	got, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Points)
	assert.Empty(t, got.UnlockedRewards)
}

func TestAddReward_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemory(store.Options{}), Options{
		Now: func() time.Time { return epoch },
	})

	r := Reward{ID: "sticker", Type: RewardNovelty, Title: "Sticker"}
	a, err := m.AddReward(ctx, r)
	require.NoError(t, err)
	b, err := m.AddReward(ctx, r)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, strings.HasPrefix(a.ID, fmt.Sprintf("sticker_%d_", epoch.UnixMilli())))
	assert.Equal(t, epoch, a.UnlockedAt)

	ud, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, ud.UnlockedRewards, 2)
}

func TestUpdatePoints(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory(store.Options{}), 0)

	require.NoError(t, m.UpdatePoints(ctx, 120))
	ud, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, ud.Points)
}

func TestRemoveDiagnoses(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory(store.Options{}), 0)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, m.AddDiagnosis(ctx, diag(id, epoch)))
	}

	n, err := m.RemoveDiagnoses(ctx, []string{"a", "c", "missing"})
	require.NoError(t, err)
	assert.Equal(t, 2, n, "unknown ids are not counted")
	ud, err := m.Read(ctx)
	require.NoError(t, err)
	require.Len(t, ud.CompletedDiagnoses, 1)
	assert.Equal(t, "b", ud.CompletedDiagnoses[0].ID)
	assert.Equal(t, 30, ud.Points, "removal does not refund points")

	assert.NoError(t, m.RemoveDiagnosis(ctx, "missing"))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory(store.Options{}), 0)

	first, err := m.Read(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Clear(ctx))

	second, err := m.Read(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.UserID, second.UserID)
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestManager(t, store.NewMemory(store.Options{}), 0)
	require.NoError(t, src.AddDiagnosis(ctx, diag("d1", epoch)))
	_, err := src.AddReward(ctx, Reward{ID: "r", Type: RewardSpecial, Title: "Badge"})
	require.NoError(t, err)

	text, err := src.Export(ctx)
	require.NoError(t, err)
	assert.Contains(t, text, "\n  \"userId\"")

	dst := newTestManager(t, store.NewMemory(store.Options{}), 0)
	require.NoError(t, dst.Import(ctx, text))

	want, err := src.Read(ctx)
	require.NoError(t, err)
	got, err := dst.Read(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.Points, got.Points)
	if diff := cmp.Diff(want.CompletedDiagnoses, got.CompletedDiagnoses); diff != "" {
		t.Errorf("diagnoses mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.UnlockedRewards, got.UnlockedRewards); diff != "" {
		t.Errorf("rewards mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_RejectsMalformedJSON(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory(store.Options{}), 0)
	require.NoError(t, m.UpdatePoints(ctx, 50))

	assert.Error(t, m.Import(ctx, "not json"))

	ud, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, ud.Points)
}

func TestImport_WrongShapeHealsOnNextRead(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory(store.Options{}), 0)

	require.NoError(t, m.Import(ctx, `{"points": 5}`))

	ud, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Zero(t, ud.Points)
	assert.NotEmpty(t, ud.UserID)
}

func TestStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, Options{})

	_, err := m.Read(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, m.Write(ctx, NewUserData("u", epoch)), ErrStorageUnavailable)
	assert.ErrorIs(t, m.AddDiagnosis(ctx, diag("d", epoch)), ErrStorageUnavailable)
	assert.ErrorIs(t, m.Clear(ctx), ErrStorageUnavailable)
}

// Two managers sharing a store each read, modify and write without
// coordination, so the later write wins.
func TestConcurrentManagers_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory(store.Options{})
	a := newTestManager(t, kv, 0)
	b := newTestManager(t, kv, 0)

	stale, err := a.Read(ctx)
	require.NoError(t, err)

	require.NoError(t, b.AddDiagnosis(ctx, diag("from-b", epoch)))

	stale.Points = 500
	require.NoError(t, a.Write(ctx, stale))

	ud, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500, ud.Points)
	_, found := ud.Diagnosis("from-b")
	assert.False(t, found, "b's diagnosis is lost by a's stale write")
}
