package employee

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nwieland/staffdir/internal/namematch"
	"github.com/nwieland/staffdir/internal/platform/database/schema"
	"github.com/nwieland/staffdir/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// employeeColumns is the SELECT list shared by every employee query.
func employeeColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.RefEmployee.ID, schema.RefEmployee.CompanyID, schema.RefEmployee.Surname,
		schema.RefEmployee.GivenName, schema.RefEmployee.DateOfBirth, schema.RefEmployee.Gender,
		schema.RefEmployee.PostalCode, schema.RefEmployee.City, schema.RefEmployee.StreetAddress,
		schema.RefEmployee.CreatedAt, schema.RefEmployee.UpdatedAt,
	)
}

func scanEmployee(row interface{ Scan(...any) error }) (*Employee, error) {
	e := &Employee{}
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.Surname, &e.GivenName, &e.DateOfBirth, &e.Gender,
		&e.PostalCode, &e.City, &e.StreetAddress, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (repository *PostgresRepository) ListEmployees(context context.Context, companyID int64, limit, offset int) ([]*Employee, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.RefEmployee.Table, schema.RefEmployee.CompanyID,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_employees")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC, %s ASC
		LIMIT $2 OFFSET $3
	`,
		employeeColumns(), schema.RefEmployee.Table, schema.RefEmployee.CompanyID,
		schema.RefEmployee.Surname, schema.RefEmployee.GivenName, schema.RefEmployee.ID,
	)

	rows, err := repository.db.Query(context, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_employees")
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_employee")
		}
		employees = append(employees, e)
	}

	return employees, total, nil
}

func (repository *PostgresRepository) GetEmployee(context context.Context, companyID, id int64) (*Employee, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		employeeColumns(), schema.RefEmployee.Table,
		schema.RefEmployee.ID, schema.RefEmployee.CompanyID,
	)

	e, err := scanEmployee(repository.db.QueryRow(context, query, id, companyID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_employee")
	}
	return e, nil
}

func (repository *PostgresRepository) CreateEmployee(context context.Context, e *Employee) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.RefEmployee.Table, schema.RefEmployee.CompanyID, schema.RefEmployee.Surname,
		schema.RefEmployee.GivenName, schema.RefEmployee.DateOfBirth, schema.RefEmployee.Gender,
		schema.RefEmployee.PostalCode, schema.RefEmployee.City, schema.RefEmployee.StreetAddress,
		schema.RefEmployee.CreatedAt, schema.RefEmployee.UpdatedAt,
		schema.RefEmployee.ID, schema.RefEmployee.CreatedAt, schema.RefEmployee.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		e.CompanyID, e.Surname, e.GivenName, e.DateOfBirth, e.Gender,
		e.PostalCode, e.City, e.StreetAddress,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return dberr.Wrap(err, "create_employee")
}

func (repository *PostgresRepository) UpdateEmployee(context context.Context, e *Employee) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.RefEmployee.Table,
		schema.RefEmployee.Surname, schema.RefEmployee.GivenName, schema.RefEmployee.DateOfBirth,
		schema.RefEmployee.Gender, schema.RefEmployee.PostalCode, schema.RefEmployee.City,
		schema.RefEmployee.StreetAddress, schema.RefEmployee.UpdatedAt,
		schema.RefEmployee.ID, schema.RefEmployee.CompanyID,
		schema.RefEmployee.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		e.ID, e.CompanyID, e.Surname, e.GivenName, e.DateOfBirth, e.Gender,
		e.PostalCode, e.City, e.StreetAddress,
	).Scan(&e.UpdatedAt)
	return dberr.Wrap(err, "update_employee")
}

func (repository *PostgresRepository) DeleteEmployee(context context.Context, companyID, id int64) error {
	// Index rows go with the employee via the FK cascade.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.RefEmployee.Table, schema.RefEmployee.ID, schema.RefEmployee.CompanyID,
	)

	cmd, err := repository.db.Exec(context, query, id, companyID)
	if err != nil {
		return dberr.Wrap(err, "delete_employee")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Search(context context.Context, companyID int64, query QueryValue, dateOfBirth *time.Time, limit, offset int) ([]*Employee, int, error) {
	where := fmt.Sprintf("%s = $1", schema.RefEmployee.CompanyID)
	args := []any{companyID}

	if query.Key == nil {
		// LIKE degrades to equality for EXACT, whose value has no wildcard.
		where += fmt.Sprintf(" AND %s LIKE $%d", schema.RefEmployee.Surname, len(args)+1)
		args = append(args, query.Value)
	} else {
		where += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s n WHERE n.%s = %s.%s AND n.%s = $%d AND n.%s LIKE $%d)",
			schema.RefEmployeeName.Table,
			schema.RefEmployeeName.OwnerID, schema.RefEmployee.Table, schema.RefEmployee.ID,
			schema.RefEmployeeName.Key, len(args)+1,
			schema.RefEmployeeName.Value, len(args)+2,
		)
		args = append(args, string(*query.Key), query.Value)
	}

	if dateOfBirth != nil {
		where += fmt.Sprintf(" AND %s = $%d", schema.RefEmployee.DateOfBirth, len(args)+1)
		args = append(args, *dateOfBirth)
	}

	return repository.searchWhere(context, where, args, limit, offset)
}

func (repository *PostgresRepository) SearchByPersonFilter(context context.Context, companyID int64, filter *namematch.PersonFilter, limit, offset int) ([]*Employee, int, error) {
	where := fmt.Sprintf("%s = $1", schema.RefEmployee.CompanyID)
	args := []any{companyID}

	weakKeys := []string{string(namematch.KeySurnameReduced), string(namematch.KeyGivenNameReduced)}
	if filter.Phonetic {
		weakKeys = []string{string(namematch.KeySurnamePhonetic), string(namematch.KeyGivenNamePhonetic)}
	}
	exactKeys := []string{string(namematch.KeySurnameLowercase), string(namematch.KeyGivenNameLowercase)}

	// Any matching name qualifies; the date narrows the result further.
	var nameClauses []string

	for _, name := range filter.ExactNames {
		clause := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s n WHERE n.%s = %s.%s AND n.%s = ANY($%d) AND n.%s = $%d)",
			schema.RefEmployeeName.Table,
			schema.RefEmployeeName.OwnerID, schema.RefEmployee.Table, schema.RefEmployee.ID,
			schema.RefEmployeeName.Key, len(args)+1,
			schema.RefEmployeeName.Value, len(args)+2,
		)
		args = append(args, exactKeys, namematch.NormalizeSingleName(name))
		nameClauses = append(nameClauses, clause)
	}

	for _, name := range filter.WeakNames {
		clause := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s n WHERE n.%s = %s.%s AND n.%s = ANY($%d) AND n.%s LIKE $%d)",
			schema.RefEmployeeName.Table,
			schema.RefEmployeeName.OwnerID, schema.RefEmployee.Table, schema.RefEmployee.ID,
			schema.RefEmployeeName.Key, len(args)+1,
			schema.RefEmployeeName.Value, len(args)+2,
		)
		args = append(args, weakKeys, name)
		nameClauses = append(nameClauses, clause)
	}

	if len(nameClauses) > 0 {
		combined := nameClauses[0]
		for _, clause := range nameClauses[1:] {
			combined += " OR " + clause
		}
		where += " AND (" + combined + ")"
	}

	if filter.DateOfBirth != nil {
		where += fmt.Sprintf(" AND %s = $%d", schema.RefEmployee.DateOfBirth, len(args)+1)
		args = append(args, *filter.DateOfBirth)
	}

	return repository.searchWhere(context, where, args, limit, offset)
}

// searchWhere runs the shared count+page pair over an assembled WHERE clause.
func (repository *PostgresRepository) searchWhere(context context.Context, where string, args []any, limit, offset int) ([]*Employee, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.RefEmployee.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_employee_search")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s ASC, %s ASC, %s ASC
		LIMIT $`+itos(len(args)+1)+` OFFSET $`+itos(len(args)+2),
		employeeColumns(), schema.RefEmployee.Table, where,
		schema.RefEmployee.Surname, schema.RefEmployee.GivenName, schema.RefEmployee.ID,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_employees")
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_employee")
		}
		employees = append(employees, e)
	}

	return employees, total, nil
}

func (repository *PostgresRepository) ListForIndex(context context.Context, companyID int64) ([]IndexSource, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.RefEmployee.ID, schema.RefEmployee.Surname, schema.RefEmployee.GivenName,
		schema.RefEmployee.Table, schema.RefEmployee.CompanyID, schema.RefEmployee.ID,
	)

	rows, err := repository.db.Query(context, query, companyID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_employees_for_index")
	}
	defer rows.Close()

	var sources []IndexSource
	for rows.Next() {
		var source IndexSource
		if err := rows.Scan(&source.ID, &source.Surname, &source.GivenName); err != nil {
			return nil, dberr.Wrap(err, "scan_index_source")
		}
		sources = append(sources, source)
	}

	return sources, nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
