// Package store implements the referential-integrity contract over the
// domain model: create, read, update, and delete keyed by entity kind, each
// operation running in a single database transaction. Cascade semantics are
// declared on the schema itself (see internal/models), so a delete or a
// cascade-update commits fully, with every dependent row, or rolls back and
// reports a taxonomy error.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/models"
)

// Store exposes entity-kind keyed persistence over a gorm handle.
type Store struct {
	db *gorm.DB
}

// New constructs a Store.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("store: db is required")
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for callers composing larger transactions.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn in a single database transaction and maps the
// resulting error onto the store taxonomy. Callers use it to group reads
// and writes that must commit atomically.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return translate(s.db.WithContext(ctx).Transaction(fn))
}

// Create inserts a new record of the given kind. The record's concrete type
// must match the kind's model. Unique breaches surface as
// ErrConstraintViolation, absent parents as ErrForeignKeyViolation.
func (s *Store) Create(ctx context.Context, kind models.EntityKind, record any) error {
	if err := checkKind(kind, record); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	return translate(err)
}

// Get loads a single row by identifier into out.
func (s *Store) Get(ctx context.Context, kind models.EntityKind, id string, out any) error {
	if err := checkKind(kind, out); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).First(out, "id = ?", id).Error
	return translate(err)
}

// List loads rows matching the optional conditions into out, which must be a
// pointer to a slice of the kind's model.
func (s *Store) List(ctx context.Context, kind models.EntityKind, out any, conds ...any) error {
	if models.NewRecord(kind) == nil {
		return fmt.Errorf("store: unknown entity kind %q", kind)
	}

	err := s.db.WithContext(ctx).Find(out, conds...).Error
	return translate(err)
}

// Update applies a partial update to the identified row. When the patch
// touches a cascade-update column (for example user.email) the declared
// ON UPDATE CASCADE rules propagate to every dependent row inside the same
// transaction, so no partial update is ever observable.
func (s *Store) Update(ctx context.Context, kind models.EntityKind, id string, patch map[string]any) error {
	record := models.NewRecord(kind)
	if record == nil {
		return fmt.Errorf("store: unknown entity kind %q", kind)
	}
	if len(patch) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(record).Where("id = ?", id).Updates(patch)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}

// Delete removes the identified row. Every declared cascade-delete relation
// removes its dependent rows in the same transaction; an undeclared reference
// that would be left dangling aborts with ErrForeignKeyViolation.
func (s *Store) Delete(ctx context.Context, kind models.EntityKind, id string) error {
	record := models.NewRecord(kind)
	if record == nil {
		return fmt.Errorf("store: unknown entity kind %q", kind)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(record)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}

// Count returns the number of rows of the given kind matching the conditions.
func (s *Store) Count(ctx context.Context, kind models.EntityKind, conds ...any) (int64, error) {
	record := models.NewRecord(kind)
	if record == nil {
		return 0, fmt.Errorf("store: unknown entity kind %q", kind)
	}

	var count int64
	q := s.db.WithContext(ctx).Model(record)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func checkKind(kind models.EntityKind, record any) error {
	model := models.NewRecord(kind)
	if model == nil {
		return fmt.Errorf("store: unknown entity kind %q", kind)
	}
	if record == nil {
		return fmt.Errorf("store: nil record for kind %q", kind)
	}
	if fmt.Sprintf("%T", record) != fmt.Sprintf("%T", model) {
		return fmt.Errorf("store: record type %T does not match kind %q", record, kind)
	}
	return nil
}
