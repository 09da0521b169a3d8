package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"contacts/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = `id, name, email, phone, created_at, salary_base, salary_usd, salary_eur`

type ContactRepository struct {
	pool *pgxpool.Pool
}

func (r *ContactRepository) List(ctx context.Context, search string, page, limit int) (domain.ContactPage, error) {
	const countQ = `
		select count(*) from contacts
		where name ilike $1 or email ilike $1;
	`
	const listQ = `
		select ` + contactColumns + `
		from contacts
		where name ilike $1 or email ilike $1
		order by name asc, id asc
		limit $2 offset $3;
	`

	result := domain.ContactPage{Contacts: []domain.Contact{}, Page: page, Limit: limit}
	pattern := "%" + escapeLike(search) + "%"

	// total and page must come from the same snapshot
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err = tx.QueryRow(ctx, countQ, pattern).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("failed to count contacts: %w", err)
	}

	result.TotalPages = totalPages(result.Total, limit)

	offset, ok := pageOffset(page, limit)
	if !ok {
		// window starts past any addressable row
		return result, nil
	}

	rows, err := tx.Query(ctx, listQ, pattern, limit, offset)
	if err != nil {
		return result, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, scanErr := scanContact(rows)
		if scanErr != nil {
			return result, fmt.Errorf("failed to scan contact: %w", scanErr)
		}
		result.Contacts = append(result.Contacts, c)
	}
	if err = rows.Err(); err != nil {
		return result, fmt.Errorf("error iterating contacts: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

// pageOffset returns (page-1)*limit, or false when that product overflows int.
func pageOffset(page, limit int) (int, bool) {
	if page < 1 || limit < 1 {
		return 0, false
	}
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

func totalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (domain.Contact, error) {
	const q = `select ` + contactColumns + ` from contacts where id = $1;`

	c, err := scanContact(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Contact{}, domain.ErrContactNotFound
		}
		return domain.Contact{}, fmt.Errorf("failed to select contact %d: %w", id, err)
	}
	return c, nil
}

func (r *ContactRepository) Create(ctx context.Context, fields domain.ContactFields) (domain.Contact, error) {
	const q = `
		insert into contacts (name, email, phone, salary_base, salary_usd, salary_eur)
		values ($1, $2, $3, $4, $5, $6)
		returning id, created_at;
	`

	c := contactFromFields(fields)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Contact{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, q,
		fields.Name, fields.Email, fields.Phone,
		fields.Salary.Base, fields.Salary.USD, fields.Salary.EUR,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Contact{}, domain.ErrDuplicateEmail
		}
		return domain.Contact{}, fmt.Errorf("failed to insert contact: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.Contact{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, id int64, fields domain.ContactFields) (domain.Contact, error) {
	const q = `
		update contacts
		set name = $1, email = $2, phone = $3, salary_base = $4, salary_usd = $5, salary_eur = $6
		where id = $7
		returning created_at;
	`

	c := contactFromFields(fields)
	c.ID = id

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Contact{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, q,
		fields.Name, fields.Email, fields.Phone,
		fields.Salary.Base, fields.Salary.USD, fields.Salary.EUR,
		id,
	).Scan(&c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Contact{}, domain.ErrContactNotFound
		}
		if isUniqueViolation(err) {
			return domain.Contact{}, domain.ErrDuplicateEmail
		}
		return domain.Contact{}, fmt.Errorf("failed to update contact %d: %w", id, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return domain.Contact{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `delete from contacts where id = $1;`

	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanContact(row pgx.Row) (domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.CreatedAt,
		&c.Salary.Base,
		&c.Salary.USD,
		&c.Salary.EUR,
	)
	return c, err
}

func contactFromFields(fields domain.ContactFields) domain.Contact {
	return domain.Contact{
		Name:   fields.Name,
		Email:  fields.Email,
		Phone:  fields.Phone,
		Salary: fields.Salary,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes search match literally inside an ilike pattern.
func escapeLike(search string) string {
	return likeEscaper.Replace(search)
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}
