package history

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/leelawheel/internal/dependencies/mocks"
	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/storage"
	"github.com/mcoot/leelawheel/internal/storage/memory"
	"github.com/mcoot/leelawheel/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store   *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
	pk      model.PlayerKey
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	s.service = New(s.store, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
	s.pk = model.PlayerKey(99)
}

func (s *ServiceSuite) TestGetEmpty() {
	entries, err := s.service.Get(s.ctx, s.pk)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ServiceSuite) TestPushThenGet() {
	s.Require().NoError(s.service.Push(s.ctx, s.pk, 3))
	s.clock.Advance(time.Minute)
	s.Require().NoError(s.service.Push(s.ctx, s.pk, 5))

	entries, err := s.service.Get(s.ctx, s.pk)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(3, entries[0].Index)
	s.Equal(5, entries[1].Index)
}

func (s *ServiceSuite) TestGetFiltersOutsideWindow() {
	s.Require().NoError(s.service.Push(s.ctx, s.pk, 1))
	s.clock.Advance(3 * 24 * time.Hour)
	s.Require().NoError(s.service.Push(s.ctx, s.pk, 2))

	s.clock.Advance(4*24*time.Hour + time.Second)

	entries, err := s.service.Get(s.ctx, s.pk)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(2, entries[0].Index)

	// Filtering on read leaves storage untouched
	raw, _, _ := s.store.Get(s.ctx, storage.HistoryKey(s.pk))
	var stored []model.HistoryEntry
	s.Require().NoError(json.Unmarshal([]byte(raw), &stored))
	s.Len(stored, 2)
}

func (s *ServiceSuite) TestPushTrimsStaleEntries() {
	s.Require().NoError(s.service.Push(s.ctx, s.pk, 1))
	s.clock.Advance(8 * 24 * time.Hour)
	s.Require().NoError(s.service.Push(s.ctx, s.pk, 2))

	raw, _, _ := s.store.Get(s.ctx, storage.HistoryKey(s.pk))
	var stored []model.HistoryEntry
	s.Require().NoError(json.Unmarshal([]byte(raw), &stored))
	s.Require().Len(stored, 1)
	s.Equal(2, stored[0].Index)
}

func (s *ServiceSuite) TestPushCapsLength() {
	for i := 0; i < MaxEntries+10; i++ {
		s.Require().NoError(s.service.Push(s.ctx, s.pk, i))
		s.clock.Advance(time.Second)
	}

	entries, err := s.service.Get(s.ctx, s.pk)
	s.Require().NoError(err)
	s.Len(entries, MaxEntries)
	s.Equal(10, entries[0].Index, "oldest entries should be dropped from the front")
	s.Equal(MaxEntries+9, entries[len(entries)-1].Index)
}

func (s *ServiceSuite) TestMalformedHistoryIsDiscarded() {
	s.Require().NoError(s.store.Set(s.ctx, storage.HistoryKey(s.pk), "not json"))

	entries, err := s.service.Get(s.ctx, s.pk)
	s.Require().NoError(err)
	s.Empty(entries)

	s.Require().NoError(s.service.Push(s.ctx, s.pk, 4))
	entries, err = s.service.Get(s.ctx, s.pk)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *ServiceSuite) TestPlayersAreIsolated() {
	s.Require().NoError(s.service.Push(s.ctx, s.pk, 1))

	entries, err := s.service.Get(s.ctx, model.PlayerKey(100))
	s.Require().NoError(err)
	s.Empty(entries)
}

func entriesOf(indexes ...int) []model.HistoryEntry {
	entries := make([]model.HistoryEntry, len(indexes))
	for i, idx := range indexes {
		entries[i] = model.HistoryEntry{Index: idx}
	}
	return entries
}

func TestPickNonRepeating(t *testing.T) {
	perm := []int{3, 5, 1, 4, 0, 2}

	tests := []struct {
		name    string
		base    int
		history []model.HistoryEntry
		want    int
	}{
		{"unused base is kept", 3, entriesOf(5), 3},
		{"empty history", 4, nil, 4},
		{"skips used neighbours", 3, entriesOf(3, 3, 5), 1},
		{"first probe free", 4, entriesOf(4), 0},
		{"wraps around", 2, entriesOf(2, 3), 5},
		{"all probes used returns base", 3, entriesOf(3, 5, 1, 4, 0), 3},
		{"fourth probe is the last chance", 3, entriesOf(3, 5, 1, 4), 0},
		{"base missing from perm probes from start", 9, entriesOf(9), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PickNonRepeating(tt.base, perm, tt.history))
		})
	}
}

func TestPickNonRepeatingFindsUnusedWithinProbes(t *testing.T) {
	perm := []int{7, 2, 9, 0, 4, 1, 8, 3, 6, 5}
	history := entriesOf(7, 2, 9)

	got := PickNonRepeating(7, perm, history)
	assert.Equal(t, 0, got)
	assert.NotContains(t, Indexes(history), got)
}
