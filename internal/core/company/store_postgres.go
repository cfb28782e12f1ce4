package company

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nwieland/staffdir/internal/platform/database/schema"
	"github.com/nwieland/staffdir/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func companyColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.RefCompany.ID, schema.RefCompany.ExternalID, schema.RefCompany.Name,
		schema.RefCompany.PostalCode, schema.RefCompany.City,
		schema.RefCompany.CreatedAt, schema.RefCompany.UpdatedAt,
	)
}

func scanCompany(row interface{ Scan(...any) error }) (*Company, error) {
	c := &Company{}
	err := row.Scan(&c.ID, &c.ExternalID, &c.Name, &c.PostalCode, &c.City, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (repository *PostgresRepository) ListCompanies(context context.Context, f Filter, limit, offset int) ([]*Company, int, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s IS NULL
	`,
		companyColumns(), schema.RefCompany.Table, schema.RefCompany.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, schema.RefCompany.Table, schema.RefCompany.DeletedAt)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		query += fmt.Sprintf(` AND %s ILIKE $1`, schema.RefCompany.Name)
		countQuery += fmt.Sprintf(` AND %s ILIKE $1`, schema.RefCompany.Name)
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $", schema.RefCompany.Name) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_companies")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_companies")
	}
	defer rows.Close()

	var companies []*Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_company")
		}
		companies = append(companies, c)
	}

	return companies, total, nil
}

func (repository *PostgresRepository) ListCompaniesForUser(context context.Context, userID string, limit, offset int) ([]*Company, int, error) {
	membershipClause := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s m WHERE m.%s = %s.%s AND m.%s = $1)",
		schema.UserCompanyMember.Table,
		schema.UserCompanyMember.CompanyID, schema.RefCompany.Table, schema.RefCompany.ID,
		schema.UserCompanyMember.UserID,
	)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL AND %s`,
		schema.RefCompany.Table, schema.RefCompany.DeletedAt, membershipClause,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_user_companies")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s IS NULL AND %s
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		companyColumns(), schema.RefCompany.Table, schema.RefCompany.DeletedAt,
		membershipClause, schema.RefCompany.Name,
	)

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_user_companies")
	}
	defer rows.Close()

	var companies []*Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_company")
		}
		companies = append(companies, c)
	}

	return companies, total, nil
}

func (repository *PostgresRepository) GetCompany(context context.Context, id int64) (*Company, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		companyColumns(), schema.RefCompany.Table, schema.RefCompany.ID, schema.RefCompany.DeletedAt,
	)

	c, err := scanCompany(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_company")
	}
	return c, nil
}

func (repository *PostgresRepository) GetCompanyByExternalID(context context.Context, externalID string) (*Company, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		companyColumns(), schema.RefCompany.Table, schema.RefCompany.ExternalID, schema.RefCompany.DeletedAt,
	)

	c, err := scanCompany(repository.db.QueryRow(context, query, externalID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_company_by_external_id")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateCompany(context context.Context, c *Company) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.RefCompany.Table, schema.RefCompany.ExternalID, schema.RefCompany.Name,
		schema.RefCompany.PostalCode, schema.RefCompany.City,
		schema.RefCompany.CreatedAt, schema.RefCompany.UpdatedAt,
		schema.RefCompany.ID, schema.RefCompany.CreatedAt, schema.RefCompany.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ExternalID, c.Name, c.PostalCode, c.City).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_company")
}

func (repository *PostgresRepository) UpdateCompany(context context.Context, c *Company) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.RefCompany.Table, schema.RefCompany.Name, schema.RefCompany.PostalCode,
		schema.RefCompany.City, schema.RefCompany.UpdatedAt,
		schema.RefCompany.ID, schema.RefCompany.DeletedAt,
		schema.RefCompany.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.Name, c.PostalCode, c.City).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_company")
}

func (repository *PostgresRepository) DeleteCompany(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.RefCompany.Table, schema.RefCompany.DeletedAt, schema.RefCompany.ID, schema.RefCompany.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_company")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) AddMember(context context.Context, companyID int64, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING
	`,
		schema.UserCompanyMember.Table, schema.UserCompanyMember.CompanyID,
		schema.UserCompanyMember.UserID, schema.UserCompanyMember.CreatedAt,
	)

	_, err := repository.db.Exec(context, query, companyID, userID)
	return dberr.Wrap(err, "add_company_member")
}

func (repository *PostgresRepository) RemoveMember(context context.Context, companyID int64, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.UserCompanyMember.Table, schema.UserCompanyMember.CompanyID, schema.UserCompanyMember.UserID,
	)

	_, err := repository.db.Exec(context, query, companyID, userID)
	return dberr.Wrap(err, "remove_company_member")
}

func (repository *PostgresRepository) IsMember(context context.Context, companyID int64, userID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.UserCompanyMember.Table, schema.UserCompanyMember.CompanyID, schema.UserCompanyMember.UserID,
	)

	var member bool
	if err := repository.db.QueryRow(context, query, companyID, userID).Scan(&member); err != nil {
		return false, dberr.Wrap(err, "check_company_member")
	}
	return member, nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
