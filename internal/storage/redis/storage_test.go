package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSetAndGet() {
	key := storage.LastPlayKey(model.PlayerKey(-1849590173))

	err := s.storage.Set(s.ctx, key, "1704067200000")
	s.Require().NoError(err)

	value, found, err := s.storage.Get(s.ctx, key)
	s.Require().NoError(err)
	s.True(found)
	s.Equal("1704067200000", value)

	// Stored under the shared key layout
	raw, err := s.mini.Get("leela:lastPlay:-1849590173")
	s.Require().NoError(err)
	s.Equal("1704067200000", raw)
}

func (s *StorageSuite) TestGetMissing() {
	_, found, err := s.storage.Get(s.ctx, storage.ConfigKey())
	s.Require().NoError(err)
	s.False(found)
}

func (s *StorageSuite) TestValuesDoNotExpire() {
	key := storage.HistoryKey(model.PlayerKey(7))
	_ = s.storage.Set(s.ctx, key, "[]")

	s.Equal(time.Duration(0), s.mini.TTL(key), "values should not have TTL")
}

func (s *StorageSuite) TestNamespace() {
	cfg := DefaultConfig()
	cfg.Namespace = "staging"
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	namespaced := NewWithClient(client, cfg)
	defer func() { _ = namespaced.Close() }()

	s.Require().NoError(namespaced.Set(s.ctx, storage.ConfigKey(), "{}"))

	s.True(s.mini.Exists("staging:leela:config:v2"))
	s.False(s.mini.Exists("leela:config:v2"))

	value, found, err := namespaced.Get(s.ctx, storage.ConfigKey())
	s.Require().NoError(err)
	s.True(found)
	s.Equal("{}", value)
}

func (s *StorageSuite) TestGetFailsWhenServerDown() {
	s.mini.Close()

	_, _, err := s.storage.Get(s.ctx, storage.ConfigKey())
	s.Error(err)
	s.mini = nil
}
