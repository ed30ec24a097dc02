package database

import (
	"context"
	"testing"

	"entgo.io/ent/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpress/hollow-press/pkg/config"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		dbType  string
		want    string
		wantErr bool
	}{
		{"mysql", dialect.MySQL, false},
		{"mariadb", dialect.MySQL, false},
		{"postgres", dialect.Postgres, false},
		{"", dialect.SQLite, false},
		{"sqlite3", dialect.SQLite, false},
		{"oracle", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			got, err := DialectFor(tt.dbType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSQLDBRejectsIncompleteParams(t *testing.T) {
	cfg := config.NewFromMap(map[string]string{config.KeyDBType: "postgres", config.KeyDBHost: "localhost"})
	_, err := NewSQLDB(cfg)
	assert.ErrorContains(t, err, "PostgreSQL 连接参数不完整")
}

func TestNewRedisClientFallsBack(t *testing.T) {
	t.Run("未配置地址", func(t *testing.T) {
		client, err := NewRedisClient(context.Background(), config.NewFromMap(nil))
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("DB 编号无效", func(t *testing.T) {
		cfg := config.NewFromMap(map[string]string{config.KeyRedisAddr: "127.0.0.1:6379", config.KeyRedisDB: "zero"})
		client, err := NewRedisClient(context.Background(), cfg)
		require.NoError(t, err)
		assert.Nil(t, client)
	})
}
