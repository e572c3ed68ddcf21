// Package store persists imported records into SQL tables.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ErrUnknownDriver indicates an unsupported database driver name.
var ErrUnknownDriver = errors.New("unknown database driver")

// ErrInvalidIdentifier indicates a table or column name that is not a plain SQL identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// batchSize limits the rows per INSERT statement.
const batchSize = 500

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store writes records through gorm.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects to a postgres or sqlite database.
func Open(driver, dsn string, logger *zap.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return New(db, logger), nil
}

// New wraps an existing gorm connection.
func New(db *gorm.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save writes records into table in one transaction and returns the number
// of affected rows. In append mode rows are inserted and the database assigns
// keys; otherwise records carrying an id update the existing row.
func (s *Store) Save(ctx context.Context, table string, records []models.Record, typ sheetimport.ImportType) (int64, error) {
	if !identifier.MatchString(table) {
		return 0, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([]map[string]interface{}, len(records))
	columns := make(map[string]bool)
	var order []string
	for i, r := range records {
		for _, k := range r.Keys() {
			if !identifier.MatchString(k) {
				return 0, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, k)
			}
			if !columns[k] {
				columns[k] = true
				order = append(order, k)
			}
		}
		rows[i] = r.Map()
	}

	conflict := upsertClause(order)
	upsert := typ != sheetimport.TypeAppend && columns[sheetimport.FieldID]

	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(rows); start += batchSize {
			end := min(start+batchSize, len(rows))
			q := tx.Table(table)
			if upsert {
				q = q.Clauses(conflict)
			}
			res := q.Create(rows[start:end])
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save records into %s: %w", table, err)
	}

	s.logger.Info(fmt.Sprintf("%d records were saved into %s", affected, table),
		zap.String("type", string(typ)),
	)
	return affected, nil
}

// upsertClause updates every non-key column when the id already exists.
func upsertClause(columns []string) clause.OnConflict {
	var updates []string
	for _, c := range columns {
		if c != sheetimport.FieldID {
			updates = append(updates, c)
		}
	}

	oc := clause.OnConflict{Columns: []clause.Column{{Name: sheetimport.FieldID}}}
	if len(updates) == 0 {
		oc.DoNothing = true
	} else {
		oc.DoUpdates = clause.AssignmentColumns(updates)
	}
	return oc
}
