package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"karigar/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnString(t *testing.T) {
	tests := []struct {
		name string
		cfg  utils.DatabaseConfig
		want string
	}{
		{
			name: "plain",
			cfg:  utils.DatabaseConfig{Host: "db", Port: "5432", Name: "karigar", User: "app", Password: "secret"},
			want: "host=db port=5432 dbname=karigar user=app password=secret sslmode=disable",
		},
		{
			name: "password needs quoting",
			cfg:  utils.DatabaseConfig{Host: "db", Name: "karigar", User: "app", Password: `it's a \ pass`},
			want: `host=db dbname=karigar user=app password='it\'s a \\ pass' sslmode=disable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, connString(tt.cfg))
		})
	}
}

func TestConnString_ParsesBack(t *testing.T) {
	cfg := utils.DatabaseConfig{Host: "db", Port: "5433", Name: "karigar", User: "app", Password: `p@ss 'word'`}

	parsed, err := pgxpool.ParseConfig(connString(cfg))
	require.NoError(t, err)
	assert.Equal(t, `p@ss 'word'`, parsed.ConnConfig.Password)
	assert.Equal(t, uint16(5433), parsed.ConnConfig.Port)
	assert.Equal(t, "karigar", parsed.ConnConfig.Database)
}

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestPingWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("recovers", func(t *testing.T) {
		p := &flakyPinger{failures: 2}
		require.NoError(t, pingWithRetry(ctx, p, 5, time.Millisecond, zap.NewNop()))
		assert.Equal(t, 3, p.calls)
	})

	t.Run("gives up", func(t *testing.T) {
		p := &flakyPinger{failures: 10}
		err := pingWithRetry(ctx, p, 3, time.Millisecond, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after 3 attempts")
		assert.Equal(t, 3, p.calls)
	})

	t.Run("stops on cancel", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		p := &flakyPinger{failures: 10}
		err := pingWithRetry(cctx, p, 5, time.Hour, zap.NewNop())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, p.calls)
	})
}
