package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const userColumns = `id, username, email, password_hash, bio, avatar_key,
  invest_goal, invest_risk_style, invest_fund_level, invest_market_condition,
  created_at, updated_at`

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, email, password_hash, bio, avatar_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		nullableString(user.Bio),
		nullableString(user.AvatarKey),
	)
	return err
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, email, password_hash, bio, avatar_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (id) DO UPDATE SET
  username = EXCLUDED.username,
  email = EXCLUDED.email,
  bio = EXCLUDED.bio,
  avatar_key = EXCLUDED.avatar_key,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		nullableString(user.Bio),
		nullableString(user.AvatarKey),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.getBy(ctx, "id = $1", userID)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getBy(ctx, "lower(email) = lower($1)", email)
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	return r.getBy(ctx, "lower(username) = lower($1)", username)
}

func (r *PGRepo) getBy(ctx context.Context, where string, arg any) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) Update(ctx context.Context, user User) error {
	const query = `
UPDATE users SET
  username = $2,
  email = $3,
  bio = $4,
  avatar_key = $5,
  updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		nullableString(user.Bio),
		nullableString(user.AvatarKey),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID, passwordHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) UpdateInvestmentProfile(ctx context.Context, userID string, profile InvestmentProfile) error {
	const query = `
UPDATE users SET
  invest_goal = $2,
  invest_risk_style = $3,
  invest_fund_level = $4,
  invest_market_condition = $5,
  updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		userID,
		nullableString(profile.Goal),
		nullableString(profile.RiskStyle),
		nullableString(profile.FundLevel),
		nullableString(profile.MarketCondition),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Search(ctx context.Context, query string, limit int) ([]User, error) {
	if limit <= 0 {
		limit = 50
	}
	sqlQuery := `SELECT ` + userColumns + `
FROM users
WHERE $1 = '' OR username ILIKE '%' || $1 || '%'
ORDER BY username
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var bio, avatarKey sql.NullString
	var goal, riskStyle, fundLevel, marketCondition sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&bio,
		&avatarKey,
		&goal,
		&riskStyle,
		&fundLevel,
		&marketCondition,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return User{}, err
	}
	user.Bio = bio.String
	user.AvatarKey = avatarKey.String
	user.InvestGoal = goal.String
	user.InvestRiskStyle = riskStyle.String
	user.InvestFundLevel = fundLevel.String
	user.InvestMarketCondition = marketCondition.String
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
