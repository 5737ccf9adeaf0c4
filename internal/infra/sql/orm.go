package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

//go:generate mockgen -source=orm.go -destination=../../../test/unit/doubles/infra/sql/orm_mock.go -package=sql -mock_names=ORM=MockORM

type ORM interface {
	AutoMigrate(dst ...any) error
	Count(count *int64) ORM
	Create(value any) ORM
	Find(dest any, conds ...any) ORM
	First(dest any, conds ...any) ORM
	Limit(limit int) ORM
	Model(value any) ORM
	Order(value any) ORM
	Scan(dest any) ORM
	Select(query any, args ...any) ORM
	Where(query any, args ...any) ORM
	WithContext(ctx context.Context) ORM
	WithTimeout(ctx context.Context, timeout time.Duration) ORM

	Error() error
	Close() error
}

type DB struct {
	*gorm.DB
	system               string
	autoMigrationEnabled bool
	timeout              time.Duration
}

var (
	ErrRecordNotFound = errors.New("record not found")
)

func (d DB) Error() error {
	switch {
	case errors.Is(d.DB.Error, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case d.DB.Error != nil:
		return fmt.Errorf("database error: %w", d.DB.Error)
	default:
		return nil
	}
}

var _ ORM = (*DB)(nil)

func (d DB) AutoMigrate(dst ...any) error {
	if d.autoMigrationEnabled {
		return d.DB.AutoMigrate(dst...)
	}

	return nil
}

func (d DB) Count(value *int64) ORM {
	return d.chain(d.DB.Count(value))
}

func (d DB) Create(value any) ORM {
	d.annotate("create")
	return d.chain(d.DB.Create(value))
}

func (d DB) Find(value any, conds ...any) ORM {
	d.annotate("find")
	return d.chain(d.DB.Find(value, conds...))
}

func (d DB) First(value any, conds ...any) ORM {
	d.annotate("first")
	return d.chain(d.DB.First(value, conds...))
}

func (d DB) Limit(value int) ORM {
	return d.chain(d.DB.Limit(value))
}

func (d DB) Model(value any) ORM {
	return d.chain(d.DB.Model(value))
}

func (d DB) Order(value any) ORM {
	return d.chain(d.DB.Order(value))
}

func (d DB) Scan(dest any) ORM {
	d.annotate("scan")
	return d.chain(d.DB.Scan(dest))
}

func (d DB) Select(query any, args ...any) ORM {
	return d.chain(d.DB.Select(query, args...))
}

func (d DB) Where(value any, conds ...any) ORM {
	return d.chain(d.DB.Where(value, conds...))
}

func (d DB) WithContext(value context.Context) ORM {
	if d.timeout > 0 {
		return d.WithTimeout(value, d.timeout)
	}

	return d.chain(d.DB.WithContext(value))
}

func (d DB) WithTimeout(ctx context.Context, timeout time.Duration) ORM {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	// the statement outlives this call; release the timer once it fires
	go func() {
		<-timeoutCtx.Done()
		cancel()
	}()
	return d.chain(d.DB.WithContext(timeoutCtx))
}

func (d DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("getting connection pool: %w", err)
	}
	return sqlDB.Close()
}

// chain keeps the receiver's settings on the next statement.
func (d DB) chain(tx *gorm.DB) ORM {
	d.DB = tx
	return &d
}

// annotate tags the active span with the statement being issued.
func (d DB) annotate(operation string) {
	if ctx := d.DB.Statement.Context; ctx != nil {
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(
				attribute.String("span.kind", "client"),
				attribute.String("component", "database"),
				attribute.String("db.system", d.system),
				attribute.String("db.operation", operation),
			)
		}
	}
}
