package database

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_ConnectionError(t *testing.T) {
	client, err := NewRedisClient(models.RedisConfig{
		Host:     "127.0.0.1",
		Port:     1,
		PoolSize: 1,
	})

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisClient_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, client.Ping(context.Background()))

	mock.ExpectPing().SetErr(errors.New("connection refused"))
	assert.Error(t, client.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_GetClient(t *testing.T) {
	db, _ := redismock.NewClientMock()
	client := &RedisClient{Client: db}
	assert.Equal(t, db, client.GetClient())
}
