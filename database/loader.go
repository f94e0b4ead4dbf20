package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"

	cataloginfra "salesboard/internal/catalog/infrastructure"
	sharedinfra "salesboard/internal/shared/infrastructure"
)

// SkippedRow est une ligne non chargée avec sa cause
type SkippedRow struct {
	Index int
	Err   error
}

// LoadReport résume un chargement
type LoadReport struct {
	Table    string
	Inserted int
	Skipped  []SkippedRow
}

// Loader recharge les tables de persistance à partir des exports.
// Tout le chargement d'une table tient dans une transaction: une ligne en échec
// est annulée seule (savepoint) et le reste est validé en un commit.
type Loader struct {
	db     *sqlx.DB
	uow    sharedinfra.UnitOfWork
	logger *log.Logger
}

// NewLoader crée un loader
func NewLoader(db *sqlx.DB, logger *log.Logger) *Loader {
	return &Loader{
		db:     db,
		uow:    sharedinfra.NewUnitOfWork(db),
		logger: logger.WithPrefix("loader"),
	}
}

// pendingRow est une ligne transformée (ou en échec de transformation)
type pendingRow struct {
	index int
	row   Row
	err   error
}

// LoadProducts charge products.csv dans la table products
func (l *Loader) LoadProducts(ctx context.Context, path string, delimiter rune) (*LoadReport, error) {
	records, err := cataloginfra.NewProductCSVReader(delimiter).ReadFile(path)
	if err != nil {
		return nil, err
	}

	rows := make([]pendingRow, len(records))
	for i, rec := range records {
		rows[i] = pendingRow{index: rec.Index, err: rec.Err}
		if rec.Err == nil {
			rows[i].row = NewProductRow(rec.Variant)
		}
	}
	return l.load(ctx, ProductsTable, rows)
}

// LoadStands charge stands.csv dans la table stands
func (l *Loader) LoadStands(ctx context.Context, path string, delimiter rune) (*LoadReport, error) {
	table, err := sharedinfra.ReadDelimitedFile(path, delimiter)
	if err != nil {
		return nil, err
	}
	if len(table.Header) < len(StandsTable.Columns) {
		return nil, fmt.Errorf("%w: stands file has %d columns, expected %d",
			sharedinfra.ErrMissingColumn, len(table.Header), len(StandsTable.Columns))
	}

	rows := make([]pendingRow, len(table.Rows))
	for i, record := range table.Rows {
		row, err := ParseStandRecord(record)
		rows[i] = pendingRow{index: i, err: err}
		if err == nil {
			rows[i].row = row
		}
	}
	return l.load(ctx, StandsTable, rows)
}

func (l *Loader) load(ctx context.Context, schema TableSchema, rows []pendingRow) (*LoadReport, error) {
	report := &LoadReport{Table: schema.Name}
	insert := l.db.Rebind(schema.InsertSQL())

	err := l.uow.Execute(ctx, func(tx *sqlx.Tx) error {
		report.Inserted = 0
		report.Skipped = report.Skipped[:0]

		if err := l.prepareTable(ctx, tx, schema); err != nil {
			return err
		}

		for _, p := range rows {
			if p.err != nil {
				report.Skipped = append(report.Skipped, SkippedRow{Index: p.index, Err: p.err})
				continue
			}

			err := sharedinfra.WithSavepoint(ctx, tx, "load_row", func() error {
				_, err := tx.ExecContext(ctx, insert, p.row.Values()...)
				return err
			})
			var spErr *sharedinfra.SavepointError
			switch {
			case errors.As(err, &spErr):
				return err
			case err != nil:
				report.Skipped = append(report.Skipped, SkippedRow{Index: p.index, Err: err})
			default:
				report.Inserted++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", schema.Name, err)
	}

	l.logger.Info("table loaded", "table", schema.Name, "inserted", report.Inserted, "skipped", len(report.Skipped))
	return report, nil
}

// prepareTable vide la table si elle existe, la crée sinon
func (l *Loader) prepareTable(ctx context.Context, tx *sqlx.Tx, schema TableSchema) error {
	exists, err := l.tableExists(ctx, tx, schema.Name)
	if err != nil {
		return fmt.Errorf("check table %s: %w", schema.Name, err)
	}

	if !exists {
		if _, err := tx.ExecContext(ctx, schema.CreateSQL()); err != nil {
			return fmt.Errorf("create table %s: %w", schema.Name, err)
		}
		l.logger.Debug("table created", "table", schema.Name)
		return nil
	}

	stmt := "TRUNCATE TABLE " + schema.Name
	if l.db.DriverName() == DriverSQLite {
		stmt = "DELETE FROM " + schema.Name
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("truncate table %s: %w", schema.Name, err)
	}
	l.logger.Debug("table truncated", "table", schema.Name)
	return nil
}

func (l *Loader) tableExists(ctx context.Context, tx *sqlx.Tx, name string) (bool, error) {
	query := `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?`
	if l.db.DriverName() == DriverSQLite {
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	}

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(query), name); err != nil {
		return false, err
	}
	return count > 0, nil
}
