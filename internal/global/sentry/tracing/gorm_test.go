package tracing

import (
	"testing"

	"github.com/raducarabat/hackcontrol/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGormPluginRegistersCallbacks(t *testing.T) {
	config.SetForTest(&config.Config{Mode: config.ModeRelease})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	plugin := NewGormPlugin()
	require.Equal(t, "SentryTracingPlugin", plugin.Name())
	require.NoError(t, db.Use(plugin))

	// 注册回调后常规操作照常工作，无 span 上下文时回调静默跳过
	type record struct {
		ID   uint
		Name string
	}
	require.NoError(t, db.AutoMigrate(&record{}))
	require.NoError(t, db.Create(&record{Name: "a"}).Error)

	var got record
	require.NoError(t, db.First(&got).Error)
	require.Equal(t, "a", got.Name)
	require.NoError(t, db.Model(&got).Update("name", "b").Error)
	require.NoError(t, db.Delete(&got).Error)
}
