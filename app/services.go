package app

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/rehabflow/backend/pkg/lifecycle"
	mongopkg "github.com/rehabflow/backend/pkg/mongo"
	redispkg "github.com/rehabflow/backend/pkg/redis"
)

// Services gives route handlers read access to the shared clients. Accessors
// fail with lifecycle.ErrHandleNotConnected before startup and
// lifecycle.ErrHandleClosed after shutdown; handlers must never close what
// they get.
type Services struct {
	docs     *lifecycle.Handle[*mongo.Client]
	cache    *lifecycle.Handle[*goredis.Client]
	database string
	redisCfg redispkg.Config
}

func (s *Services) Mongo() (*mongo.Client, error) {
	return s.docs.Client()
}

// Database returns the configured MONGODB_DATABASE.
func (s *Services) Database() (*mongo.Database, error) {
	c, err := s.docs.Client()
	if err != nil {
		return nil, err
	}
	return c.Database(s.database), nil
}

func (s *Services) Redis() (*goredis.Client, error) {
	return s.cache.Client()
}

// Cache returns a key-value view over the shared Redis client.
func (s *Services) Cache() (*redispkg.Storage, error) {
	c, err := s.cache.Client()
	if err != nil {
		return nil, err
	}
	return redispkg.NewStorageWithConfig(c, s.redisCfg), nil
}

func (s *Services) mongoCheck(ctx context.Context) error {
	c, err := s.docs.Client()
	if err != nil {
		return err
	}
	return mongopkg.Healthcheck(c)(ctx)
}

func (s *Services) redisCheck(ctx context.Context) error {
	c, err := s.cache.Client()
	if err != nil {
		return err
	}
	return redispkg.Healthcheck(c)(ctx)
}
