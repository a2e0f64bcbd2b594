package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 整合測試需要真實postgres, 未設定TEST_POSTGRES_HOST時跳過
func openTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	host := os.Getenv("TEST_POSTGRES_HOST")
	if host == "" {
		t.Skip("TEST_POSTGRES_HOST not set, skipping db integration tests")
	}

	conn, err := GetDbConn(
		envOr("TEST_POSTGRES_DB", "shop_test"),
		host,
		envOr("TEST_POSTGRES_PORT", "5432"),
		envOr("TEST_POSTGRES_USER", "postgres"),
		envOr("TEST_POSTGRES_PASSWORD", "password"),
	)
	require.NoError(t, err)

	dao := NewDbDao(conn)
	require.NoError(t, dao.InitMigrate())
	return conn
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
