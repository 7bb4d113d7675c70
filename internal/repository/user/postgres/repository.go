package user_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	"pulsefeed-backend/internal/repository/postgres/db"
)

const userColumns = `user_id, user_email, user_name, full_name, bio, gender, phone_number,
	profile_img_url, password, verified, otp, otp_expiry, refer_id, last_sign_in, created_at, modified_at`

type UserRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewUserRepository(db db.PgDB, log *logger.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

func scanUser(row pgx.Row, user *model.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FullName,
		&user.Bio,
		&user.Gender,
		&user.PhoneNumber,
		&user.ProfileImgURL,
		&user.Password,
		&user.Verified,
		&user.OTP,
		&user.OTPExpiry,
		&user.ReferID,
		&user.LastSignIn,
		&user.CreatedAt,
		&user.ModifiedAt,
	)
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	args := pgx.NamedArgs{
		"user_id":      user.ID,
		"user_email":   user.Email,
		"user_name":    user.Username,
		"password":     user.Password,
		"otp":          user.OTP,
		"otp_expiry":   user.OTPExpiry,
		"verified":     user.Verified,
		"refer_id":     user.ReferID,
		"created_at":   now,
		"modified_at":  now,
	}
	query := `
		INSERT INTO users (user_id, user_email, user_name, password, otp, otp_expiry, verified, refer_id, created_at, modified_at)
		VALUES (@user_id, @user_email, @user_name, @password, @otp, @otp_expiry, @verified, @refer_id, @created_at, @modified_at)
		RETURNING ` + userColumns

	var created model.User
	if err := scanUser(r.db.QueryRow(ctx, query, args), &created); err != nil {
		r.log.Error("Error creating user", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = @id`
	return r.getOne(ctx, query, args, "GetByID")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := pgx.NamedArgs{"email": email}
	query := `SELECT ` + userColumns + ` FROM users WHERE user_email = @email`
	return r.getOne(ctx, query, args, "GetByEmail")
}

func (r *UserRepository) getOne(ctx context.Context, query string, args pgx.NamedArgs, op string) (*model.User, error) {
	user := &model.User{}
	if err := scanUser(r.db.QueryRow(ctx, query, args), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug(fmt.Sprintf("User not found during %s", op))
			return nil, custom_errors.ErrUserNotFound
		}
		r.log.Error(fmt.Sprintf("Error getting user during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return user, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := pgx.NamedArgs{"ids": ids}
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ANY(@ids)`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.log.Error("Error getting users by ids", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return r.collectUsers(rows, "GetByIDs")
}

func (r *UserRepository) Update(ctx context.Context, id string, update *model.UpdateUserDTO) (*model.User, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{"id": id}

	if update.Username != nil {
		setClauses = append(setClauses, "user_name = @user_name")
		args["user_name"] = *update.Username
	}
	if update.FullName != nil {
		setClauses = append(setClauses, "full_name = @full_name")
		args["full_name"] = *update.FullName
	}
	if update.Bio != nil {
		setClauses = append(setClauses, "bio = @bio")
		args["bio"] = *update.Bio
	}
	if update.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *update.Gender
	}
	if update.PhoneNumber != nil {
		setClauses = append(setClauses, "phone_number = @phone_number")
		args["phone_number"] = *update.PhoneNumber
	}
	if update.ProfileImgURL != nil {
		setClauses = append(setClauses, "profile_img_url = @profile_img_url")
		args["profile_img_url"] = *update.ProfileImgURL
	}

	if len(setClauses) == 0 {
		return nil, custom_errors.ErrNoUpdateRows
	}

	setClauses = append(setClauses, "modified_at = @modified_at")
	args["modified_at"] = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") +
		" WHERE user_id = @id RETURNING " + userColumns

	var updated model.User
	if err := scanUser(r.db.QueryRow(ctx, query, args), &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrUserNotFound
		}
		r.log.Error("Error updating user", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &updated, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := pgx.NamedArgs{"username": username}
	query := `SELECT COUNT(*) FROM users WHERE user_name = @username`

	var count int
	if err := r.db.QueryRow(ctx, query, args).Scan(&count); err != nil {
		r.log.Error("Error checking username", slog.String("username", username), slog.String("error", err.Error()))
		return false, custom_errors.ErrDatabaseQuery
	}
	return count > 0, nil
}

func (r *UserRepository) SetOTP(ctx context.Context, id string, otp string, expiry pgtype.Timestamptz) error {
	args := pgx.NamedArgs{"id": id, "otp": otp, "otp_expiry": expiry}
	query := `UPDATE users SET otp = @otp, otp_expiry = @otp_expiry WHERE user_id = @id`
	return r.exec(ctx, query, args, "SetOTP")
}

func (r *UserRepository) MarkVerified(ctx context.Context, id string) error {
	args := pgx.NamedArgs{"id": id}
	query := `UPDATE users SET verified = TRUE, otp = NULL, otp_expiry = NULL WHERE user_id = @id`
	return r.exec(ctx, query, args, "MarkVerified")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, hashed string) error {
	args := pgx.NamedArgs{"id": id, "password": hashed}
	query := `UPDATE users SET password = @password, modified_at = NOW() WHERE user_id = @id`
	return r.exec(ctx, query, args, "UpdatePassword")
}

func (r *UserRepository) UpdateLastSignIn(ctx context.Context, id string) error {
	args := pgx.NamedArgs{"id": id}
	query := `UPDATE users SET last_sign_in = NOW() WHERE user_id = @id`
	return r.exec(ctx, query, args, "UpdateLastSignIn")
}

func (r *UserRepository) exec(ctx context.Context, query string, args pgx.NamedArgs, op string) error {
	result, err := r.db.Exec(ctx, query, args)
	if err != nil {
		r.log.Error(fmt.Sprintf("Error executing %s", op), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Search(ctx context.Context, query model.UserSearchQuery) ([]*model.UserSearchRow, error) {
	args := pgx.NamedArgs{
		"search_query":    query.Query,
		"limit_count":     query.Limit,
		"last_rank":       query.LastRank,
		"last_similarity": query.LastSimilarity,
	}
	sql := `SELECT user_id, rank, similarity
				FROM search_users(@search_query, @limit_count, @last_rank, @last_similarity)`

	rows, err := r.db.Query(ctx, sql, args)
	if err != nil {
		r.log.Error("Error searching users", slog.String("query", query.Query), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var results []*model.UserSearchRow
	for rows.Next() {
		var row model.UserSearchRow
		if err := rows.Scan(&row.UserID, &row.Rank, &row.Similarity); err != nil {
			r.log.Error("Error scanning search row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		results = append(results, &row)
	}

	if err = rows.Err(); err != nil {
		r.log.Error("Error iterating search rows", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return results, nil
}

func (r *UserRepository) Suggested(ctx context.Context, excludeIDs []string, limit int) ([]*model.User, error) {
	args := pgx.NamedArgs{"limit": limit}
	query := `SELECT ` + userColumns + ` FROM users`
	if len(excludeIDs) > 0 {
		query += ` WHERE NOT (user_id = ANY(@exclude_ids))`
		args["exclude_ids"] = excludeIDs
	}
	query += ` LIMIT @limit`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.log.Error("Error getting suggested users", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return r.collectUsers(rows, "Suggested")
}

func (r *UserRepository) collectUsers(rows pgx.Rows, op string) ([]*model.User, error) {
	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := scanUser(rows, &user); err != nil {
			r.log.Error(fmt.Sprintf("Error scanning user during %s", op), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error iterating rows during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return users, nil
}
