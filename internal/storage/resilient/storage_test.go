package resilient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/leelawheel/internal/dependencies/mocks"
	"github.com/mcoot/leelawheel/internal/storage"
	"github.com/mcoot/leelawheel/internal/storage/memory"
	"github.com/mcoot/leelawheel/internal/testutil"
)

var errDown = errors.New("backend down")

// flakyStore delegates to memory unless failing is set
type flakyStore struct {
	*memory.Storage
	failing bool
	gets    int
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.gets++
	if f.failing {
		return "", false, errDown
	}
	return f.Storage.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	if f.failing {
		return errDown
	}
	return f.Storage.Set(ctx, key, value)
}

type StorageSuite struct {
	suite.Suite
	primary *flakyStore
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.primary = &flakyStore{Storage: memory.New()}
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = New(s.primary, s.clock, time.Minute, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *StorageSuite) TestPassesThroughWhenHealthy() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", "v"))

	value, found, err := s.primary.Storage.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("v", value)
	s.False(s.storage.Degraded())
}

func (s *StorageSuite) TestSetNeverFails() {
	s.primary.failing = true

	err := s.storage.Set(s.ctx, "k", "v")
	s.NoError(err)
	s.True(s.storage.Degraded())

	value, found, err := s.storage.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("v", value)
}

func (s *StorageSuite) TestGetFallsBackToShadow() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", "v"))
	s.primary.failing = true

	value, found, err := s.storage.Get(s.ctx, "k")
	s.NoError(err)
	s.True(found)
	s.Equal("v", value)
}

func (s *StorageSuite) TestPrimaryBypassedUntilRetry() {
	s.primary.failing = true
	_, _, _ = s.storage.Get(s.ctx, "k")
	s.Equal(1, s.primary.gets)

	_, _, _ = s.storage.Get(s.ctx, "k")
	s.Equal(1, s.primary.gets, "primary should not be retried while degraded")

	s.primary.failing = false
	s.clock.Advance(time.Minute)
	s.False(s.storage.Degraded())

	_, _, err := s.storage.Get(s.ctx, "k")
	s.NoError(err)
	s.Equal(2, s.primary.gets)
}

func (s *StorageSuite) TestOutageWritesSurviveRecovery() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", "1000"))

	s.primary.failing = true
	s.Require().NoError(s.storage.Set(s.ctx, "k", "9000"))
	s.Equal(1, s.storage.Pending())

	s.primary.failing = false
	s.clock.Advance(time.Minute)

	value, found, err := s.storage.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("9000", value)
	s.Zero(s.storage.Pending())

	stored, _, err := s.primary.Storage.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal("9000", stored)
}

func (s *StorageSuite) TestOutageWritesKeptWhileReplayFails() {
	s.primary.failing = true
	s.Require().NoError(s.storage.Set(s.ctx, "k", "9000"))

	s.clock.Advance(time.Minute)
	value, found, err := s.storage.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("9000", value)
	s.True(s.storage.Degraded())
	s.Equal(1, s.storage.Pending())
}

func (s *StorageSuite) TestConnectStartsDegradedWhenUnreachable() {
	backend := &flakyStore{Storage: memory.New()}
	attempts := 0
	open := func() (storage.Store, error) {
		attempts++
		if attempts == 1 {
			return nil, errDown
		}
		return backend, nil
	}

	store := Connect(open, s.clock, time.Minute, testutil.NopLogger())
	s.True(store.Degraded())
	s.NoError(store.Close())

	s.Require().NoError(store.Set(s.ctx, "k", "v"))
	value, found, err := store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("v", value)
	s.Equal(1, attempts, "open should not be retried while degraded")

	s.clock.Advance(time.Minute)
	_, _, err = store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal(2, attempts)

	stored, found, err := backend.Storage.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("v", stored)
}
