package employee

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nwieland/staffdir/internal/namematch"
	"github.com/nwieland/staffdir/internal/platform/database/schema"
	"github.com/nwieland/staffdir/internal/platform/dberr"
)

// PostgresNameIndexRepository persists name variants in core.employeename.
type PostgresNameIndexRepository struct {
	db *pgxpool.Pool
}

func NewPostgresNameIndexRepository(db *pgxpool.Pool) *PostgresNameIndexRepository {
	return &PostgresNameIndexRepository{db: db}
}

func (repository *PostgresNameIndexRepository) Replace(context context.Context, ownerID int64, entries []namematch.Entry) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_index_replace_tx")
	}
	defer transaction.Rollback(context)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefEmployeeName.Table, schema.RefEmployeeName.OwnerID,
	)
	if _, err := transaction.Exec(context, deleteQuery, ownerID); err != nil {
		return dberr.Wrap(err, "delete_index_entries")
	}

	if len(entries) > 0 {
		if err := copyEntries(context, transaction, entries); err != nil {
			return dberr.Wrap(err, "insert_index_entries")
		}
	}

	return transaction.Commit(context)
}

func (repository *PostgresNameIndexRepository) DeleteByOwners(context context.Context, ownerIDs []int64) error {
	if len(ownerIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`,
		schema.RefEmployeeName.Table, schema.RefEmployeeName.OwnerID,
	)

	_, err := repository.db.Exec(context, query, ownerIDs)
	return dberr.Wrap(err, "delete_index_owners")
}

func (repository *PostgresNameIndexRepository) InsertAll(context context.Context, entries []namematch.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	if err := copyEntries(context, repository.db, entries); err != nil {
		return dberr.Wrap(err, "insert_index_entries")
	}
	return nil
}

// copySource is satisfied by both pgxpool.Pool and pgx.Tx.
type copySource interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// copyEntries bulk-loads entries via the COPY protocol, the cheapest insert
// path pgx offers for many small rows.
func copyEntries(context context.Context, db copySource, entries []namematch.Entry) error {
	rows := make([][]any, len(entries))
	for i, entry := range entries {
		rows[i] = []any{entry.OwnerID, string(entry.Key), entry.Value}
	}

	_, err := db.CopyFrom(context,
		pgx.Identifier{"core", "employeename"},
		schema.RefEmployeeName.Columns(),
		pgx.CopyFromRows(rows),
	)
	return err
}
