package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/storage"
	"github.com/mcoot/leelawheel/internal/storage/memory"
	"github.com/mcoot/leelawheel/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store   *memory.Storage
	service *Service
	ctx     context.Context
	pk      model.PlayerKey
	played  time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.service = New(s.store, testutil.NopLogger())
	s.ctx = context.Background()
	s.pk = model.PlayerKey(-1849590173)
	s.played = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) save(index int) model.SelectionResult {
	result := model.SelectionResult{QuoteIndex: index, ImagePath: "./assets/smjm/b.jpg", Timestamp: s.played}
	s.Require().NoError(s.service.Save(s.ctx, s.pk, result))
	return result
}

func (s *ServiceSuite) TestLastPlayAbsent() {
	last, err := s.service.LastPlay(s.ctx, s.pk)
	s.Require().NoError(err)
	s.Nil(last)
}

func (s *ServiceSuite) TestSaveStoresMillis() {
	s.save(7)

	raw, found, err := s.store.Get(s.ctx, storage.LastPlayKey(s.pk))
	s.Require().NoError(err)
	s.True(found)
	s.Equal("1704110400000", raw)

	last, err := s.service.LastPlay(s.ctx, s.pk)
	s.Require().NoError(err)
	s.Require().NotNil(last)
	s.True(last.Equal(s.played))
}

func (s *ServiceSuite) TestLastPlayMalformed() {
	s.Require().NoError(s.store.Set(s.ctx, storage.LastPlayKey(s.pk), "yesterday"))
	logger, logs := testutil.BufferLogger()
	s.service = New(s.store, logger)

	last, err := s.service.LastPlay(s.ctx, s.pk)
	s.Require().NoError(err)
	s.Nil(last)
	s.Contains(logs.String(), "ignoring malformed last play")
}

func (s *ServiceSuite) TestRestoreWhileLocked() {
	want := s.save(7)
	cfg := model.Config{DailyLock: true}

	got, err := s.service.Restore(s.ctx, s.pk, s.played.Add(time.Hour), cfg, 10)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(want.QuoteIndex, got.QuoteIndex)
	s.Equal(want.ImagePath, got.ImagePath)
	s.True(want.Timestamp.Equal(got.Timestamp))
}

func (s *ServiceSuite) TestRestoreAfterLockOpens() {
	s.save(7)
	cfg := model.Config{DailyLock: true}

	got, err := s.service.Restore(s.ctx, s.pk, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), cfg, 10)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *ServiceSuite) TestRestoreIndexOutOfRange() {
	s.save(7)
	cfg := model.Config{DailyLock: true}

	got, err := s.service.Restore(s.ctx, s.pk, s.played.Add(time.Minute), cfg, 5)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *ServiceSuite) TestRestoreTestingMode() {
	s.save(7)
	cfg := model.Config{DailyLock: true, TestingMode: true}

	got, err := s.service.Restore(s.ctx, s.pk, s.played.Add(time.Minute), cfg, 10)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *ServiceSuite) TestRestoreMalformed() {
	s.Require().NoError(s.store.Set(s.ctx, storage.LastResultKey(s.pk), "{oops"))

	got, err := s.service.Restore(s.ctx, s.pk, s.played, model.DefaultConfig(), 10)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *ServiceSuite) TestRestoreCooldown() {
	s.save(2)
	cfg := model.Config{CooldownMinutes: 5}

	got, err := s.service.Restore(s.ctx, s.pk, s.played.Add(4*time.Minute), cfg, 10)
	s.Require().NoError(err)
	s.NotNil(got)

	got, err = s.service.Restore(s.ctx, s.pk, s.played.Add(5*time.Minute), cfg, 10)
	s.Require().NoError(err)
	s.Nil(got)
}
