package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sangkips/preferences-api/internal/domain/entity"
	"github.com/sangkips/preferences-api/internal/domain/repository"
)

const tracerName = "github.com/sangkips/preferences-api/internal/infrastructure/repository"

// patcher is satisfied by the entity patch types
type patcher[T any] interface {
	ApplyTo(*T)
}

// preferenceRepository implements repository.PreferenceStore for one table
type preferenceRepository[T any, P patcher[T]] struct {
	db       *gorm.DB
	table    string
	defaults func(userID string) *T
	tracer   trace.Tracer
}

func newPreferenceRepository[T any, P patcher[T]](db *gorm.DB, table string, defaults func(string) *T) *preferenceRepository[T, P] {
	return &preferenceRepository[T, P]{
		db:       db,
		table:    table,
		defaults: defaults,
		tracer:   otel.Tracer(tracerName),
	}
}

// NewUserSettingsRepository creates a new general settings repository
func NewUserSettingsRepository(db *gorm.DB) repository.UserSettingsRepository {
	return newPreferenceRepository[entity.UserSettings, entity.UserSettingsPatch](
		db, entity.UserSettings{}.TableName(), entity.DefaultUserSettings)
}

// NewNotificationPreferencesRepository creates a new notification preferences repository
func NewNotificationPreferencesRepository(db *gorm.DB) repository.NotificationPreferencesRepository {
	return newPreferenceRepository[entity.NotificationPreferences, entity.NotificationPreferencesPatch](
		db, entity.NotificationPreferences{}.TableName(), entity.DefaultNotificationPreferences)
}

// NewThemeSettingsRepository creates a new theme settings repository
func NewThemeSettingsRepository(db *gorm.DB) repository.ThemeSettingsRepository {
	return newPreferenceRepository[entity.ThemeSettings, entity.ThemeSettingsPatch](
		db, entity.ThemeSettings{}.TableName(), entity.DefaultThemeSettings)
}

// Fetch retrieves the record by user ID, nil when absent
func (r *preferenceRepository[T, P]) Fetch(ctx context.Context, userID string) (*T, error) {
	ctx, span := r.startSpan(ctx, "Fetch")
	defer span.End()

	record, err := r.first(r.db.WithContext(ctx), userID)
	if err != nil {
		return nil, r.fail(span, err, "fetch")
	}
	return record, nil
}

// FetchOrDefault retrieves the record by user ID, falling back to unsaved defaults
func (r *preferenceRepository[T, P]) FetchOrDefault(ctx context.Context, userID string) (*T, error) {
	record, err := r.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return r.defaults(userID), nil
	}
	return record, nil
}

// UpsertPartial seeds the row with defaults when missing, overlays patch and saves.
// Everything happens in one transaction so a cancelled request leaves no trace.
func (r *preferenceRepository[T, P]) UpsertPartial(ctx context.Context, userID string, patch P) (*T, error) {
	ctx, span := r.startSpan(ctx, "UpsertPartial")
	defer span.End()

	var result *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := r.first(tx, userID)
		if err != nil {
			return err
		}

		if record == nil {
			// a concurrent first write for the same user may win the insert
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).Create(r.defaults(userID)).Error
			if err != nil {
				return err
			}

			if record, err = r.first(tx, userID); err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("%s row for user vanished after insert", r.table)
			}
		}

		patch.ApplyTo(record)
		if err := tx.Save(record).Error; err != nil {
			return err
		}

		result = record
		return nil
	})
	if err != nil {
		return nil, r.fail(span, err, "upsert")
	}

	return result, nil
}

func (r *preferenceRepository[T, P]) first(db *gorm.DB, userID string) (*T, error) {
	var record T
	err := db.Scopes(UserScope(userID)).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *preferenceRepository[T, P]) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "repository."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.sql.table", r.table)),
	)
}

func (r *preferenceRepository[T, P]) fail(span trace.Span, err error, op string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	return errors.WithMessagef(fmt.Errorf("%w: %w", repository.ErrPersistence, err), "%s %s", op, r.table)
}
