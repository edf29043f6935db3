package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/models"
)

const userColumns = `id, name, email, password, role, status, balance, total_deposits,
	total_withdrawals, total_earnings, created_at, updated_at`

// userSearch boş arama tüm kullanıcıları döner
const userSearch = `($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')`

// UserRepository kullanıcı database işlemleri
type UserRepository struct {
	db db.DBTX
}

// NewUserRepository yeni repository oluşturur
func NewUserRepository(database db.DBTX) *UserRepository {
	return &UserRepository{db: database}
}

// WithTx transaction içinde çalışan kopya döner
func (r *UserRepository) WithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{db: tx}
}

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Status,
		&u.Balance, &u.TotalDeposits, &u.TotalWithdrawals, &u.TotalEarnings,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create yeni kullanıcı oluşturur
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, name, email, passwordHash, role))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}
	return user, nil
}

// GetByID ID ile kullanıcı getirir
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("kullanıcı sorgusu hatası: %w", err)
	}
	return user, err
}

// GetByIDForUpdate kullanıcı satırını transaction sonuna kadar kilitler
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id int) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("kullanıcı kilitlenemedi: %w", err)
	}
	return user, err
}

// GetByEmail email ile kullanıcı getirir
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("kullanıcı sorgusu hatası: %w", err)
	}
	return user, err
}

// List kullanıcıları listeler, search isim veya email'de arar
func (r *UserRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.User, int, error) {
	limit, offset = NormalizePage(limit, offset)
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE `+userSearch, search,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("kullanıcı sayısı alınamadı: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE `+userSearch+`
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("kullanıcılar listelenemedi: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("kullanıcı scan hatası: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateName kullanıcı adını günceller
func (r *UserRepository) UpdateName(ctx context.Context, id int, name string) error {
	return r.execOne(ctx, `UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2`, name, id)
}

// UpdatePassword şifre hash'ini günceller
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return r.execOne(ctx, `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
}

// UpdateStatusRole durum ve rolü günceller
func (r *UserRepository) UpdateStatusRole(ctx context.Context, id int, status, role string) error {
	return r.execOne(ctx, `UPDATE users SET status = $1, role = $2, updated_at = NOW() WHERE id = $3`, status, role, id)
}

// AddBalance bakiyeye atomik ekleme yapar (read-modify-write yok)
func (r *UserRepository) AddBalance(ctx context.Context, id int, amount decimal.Decimal) error {
	return r.execOne(ctx, `UPDATE users SET balance = balance + $1, updated_at = NOW() WHERE id = $2`, amount, id)
}

// Debit bakiye yeterliyse düşer, değilse ErrInsufficientFunds döner
func (r *UserRepository) Debit(ctx context.Context, id int, amount decimal.Decimal) error {
	err := r.execOne(ctx, `
		UPDATE users SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1`, amount, id)
	if errors.Is(err, ErrNotFound) {
		return ErrInsufficientFunds
	}
	return err
}

// CreditDeposit onaylanan yatırımı bakiye ve toplam yatırıma ekler
func (r *UserRepository) CreditDeposit(ctx context.Context, id int, amount decimal.Decimal) error {
	return r.execOne(ctx, `
		UPDATE users SET balance = balance + $1, total_deposits = total_deposits + $1, updated_at = NOW()
		WHERE id = $2`, amount, id)
}

// AddTotalWithdrawals onaylanan çekimi toplam çekime ekler (bakiye zaten düşülmüş)
func (r *UserRepository) AddTotalWithdrawals(ctx context.Context, id int, amount decimal.Decimal) error {
	return r.execOne(ctx, `
		UPDATE users SET total_withdrawals = total_withdrawals + $1, updated_at = NOW()
		WHERE id = $2`, amount, id)
}

// CreditEarnings madencilik kazancını bakiye ve toplam kazanca ekler
func (r *UserRepository) CreditEarnings(ctx context.Context, id int, amount decimal.Decimal) error {
	return r.execOne(ctx, `
		UPDATE users SET balance = balance + $1, total_earnings = total_earnings + $1, updated_at = NOW()
		WHERE id = $2`, amount, id)
}

// GetBalance güncel bakiyeyi okur
func (r *UserRepository) GetBalance(ctx context.Context, id int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT balance FROM users WHERE id = $1`, id).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("bakiye okunamadı: %w", err)
	}
	return balance, nil
}
