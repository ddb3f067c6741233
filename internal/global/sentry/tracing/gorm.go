package tracing

import (
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	gormSpanKey  = "sentry:span"
	gormStartKey = "sentry:start"
)

// GormPlugin 实现 gorm.Plugin 接口，把数据库操作记录为 Sentry span。
// 慢查询阈值之内的 span 不上报，避免噪音。
type GormPlugin struct {
	slowThreshold time.Duration
}

func NewGormPlugin() *GormPlugin {
	return &GormPlugin{slowThreshold: dbSlowThreshold()}
}

func (p *GormPlugin) Name() string {
	return "SentryTracingPlugin"
}

func (p *GormPlugin) Initialize(db *gorm.DB) error {
	// 每个操作开始前创建 span
	_ = db.Callback().Create().Before("gorm:create").Register("sentry_tracing:before_create", p.before("db.sql.create"))
	_ = db.Callback().Query().Before("gorm:query").Register("sentry_tracing:before_query", p.before("db.sql.query"))
	_ = db.Callback().Update().Before("gorm:update").Register("sentry_tracing:before_update", p.before("db.sql.update"))
	_ = db.Callback().Delete().Before("gorm:delete").Register("sentry_tracing:before_delete", p.before("db.sql.delete"))
	_ = db.Callback().Row().Before("gorm:row").Register("sentry_tracing:before_row", p.before("db.sql.row"))
	_ = db.Callback().Raw().Before("gorm:raw").Register("sentry_tracing:before_raw", p.before("db.sql.raw"))

	// 每个操作完成后结束 span
	_ = db.Callback().Create().After("gorm:create").Register("sentry_tracing:after_create", p.after)
	_ = db.Callback().Query().After("gorm:query").Register("sentry_tracing:after_query", p.after)
	_ = db.Callback().Update().After("gorm:update").Register("sentry_tracing:after_update", p.after)
	_ = db.Callback().Delete().After("gorm:delete").Register("sentry_tracing:after_delete", p.after)
	_ = db.Callback().Row().After("gorm:row").Register("sentry_tracing:after_row", p.after)
	_ = db.Callback().Raw().After("gorm:raw").Register("sentry_tracing:after_raw", p.after)

	return nil
}

func (p *GormPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		parent := sentry.SpanFromContext(db.Statement.Context)
		if parent == nil {
			return
		}
		span := parent.StartChild(operation)
		span.SetData("db.system", "mysql")
		db.InstanceSet(gormSpanKey, span)
		db.InstanceSet(gormStartKey, time.Now())
	}
}

func (p *GormPlugin) after(db *gorm.DB) {
	v, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, ok := v.(*sentry.Span)
	if !ok {
		return
	}

	if start, ok := db.InstanceGet(gormStartKey); ok {
		if t, ok := start.(time.Time); ok && p.slowThreshold > 0 && time.Since(t) < p.slowThreshold {
			span.Sampled = sentry.SampledFalse
		}
	}

	span.SetData("db.table", db.Statement.Table)
	if db.Error != nil {
		span.Status = sentry.SpanStatusInternalError
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
