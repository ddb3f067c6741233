package test

import (
	"testing"

	"github.com/raducarabat/hackcontrol/config"
	"github.com/raducarabat/hackcontrol/internal/global/database"
	"github.com/raducarabat/hackcontrol/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// NewDB 建立内存 SQLite 并替换全局连接，测试结束后自动关闭
func NewDB(t *testing.T) *gorm.DB {
	config.SetForTest(&config.Config{
		Mode: config.ModeRelease,
		JWT:  config.JWT{AccessSecret: "test-secret", AccessExpire: 3600},
		Scoring: config.Scoring{
			DefaultMinJudges: 1,
		},
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Hackathon{},
		&model.Judge{},
		&model.Participation{},
		&model.Score{},
		&model.Announcement{},
	))

	database.DB = db
	t.Cleanup(func() {
		database.DB = nil
		_ = sqlDB.Close()
	})
	return db
}
