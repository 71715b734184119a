package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// The full error taxonomy surfaced by store operations. Callers receive these
// unmodified; the store performs no retries and no silent recovery.
var (
	// ErrNotFound signals that the operation targeted a nonexistent row.
	ErrNotFound = errors.New("store: record not found")
	// ErrConstraintViolation signals a unique constraint breach (duplicate
	// email, token, slug, or a second integration for a project).
	ErrConstraintViolation = errors.New("store: constraint violation")
	// ErrForeignKeyViolation signals that a referenced parent row is absent
	// or that the operation would leave a reference dangling.
	ErrForeignKeyViolation = errors.New("store: foreign key violation")
)

// translate maps vendor-specific database errors onto the store taxonomy.
// Unknown errors pass through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		case "23503":
			return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil {
		switch myErr.Number {
		case 1062:
			return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		case 1451, 1452:
			return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
		}
	}

	// SQLite surfaces constraint failures as plain strings.
	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "foreign key constraint"):
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
	case strings.Contains(lower, "unique constraint"), strings.Contains(lower, "duplicate"):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}

	return err
}
