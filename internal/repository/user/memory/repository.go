package memory

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
)

type UserRepository struct {
	log   *logger.Logger
	mu    sync.RWMutex
	users map[string]*model.User
}

func NewUserRepository(log *logger.Logger) *UserRepository {
	return &UserRepository{
		log:   log,
		users: make(map[string]*model.User),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, custom_errors.ErrEmailExists
		}
	}

	created := *user
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	created.CreatedAt = now
	created.ModifiedAt = now
	r.users[created.ID] = &created

	result := created
	return &result, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		r.log.Debug("User not found by id", slog.String("id", id))
		return nil, custom_errors.ErrUserNotFound
	}
	result := *user
	return &result, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			result := *user
			return &result, nil
		}
	}
	return nil, custom_errors.ErrUserNotFound
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			userCopy := *user
			result = append(result, &userCopy)
		}
	}
	return result, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, update *model.UpdateUserDTO) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return nil, custom_errors.ErrUserNotFound
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.FullName != nil {
		user.FullName = update.FullName
	}
	if update.Bio != nil {
		user.Bio = update.Bio
	}
	if update.Gender != nil {
		user.Gender = update.Gender
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.ProfileImgURL != nil {
		user.ProfileImgURL = update.ProfileImgURL
	}
	user.ModifiedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	result := *user
	return &result, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) SetOTP(ctx context.Context, id string, otp string, expiry pgtype.Timestamptz) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return custom_errors.ErrUserNotFound
	}
	user.OTP = &otp
	user.OTPExpiry = expiry
	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return custom_errors.ErrUserNotFound
	}
	user.Verified = true
	user.OTP = nil
	user.OTPExpiry = pgtype.Timestamptz{}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, hashed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return custom_errors.ErrUserNotFound
	}
	user.Password = hashed
	return nil
}

func (r *UserRepository) UpdateLastSignIn(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return custom_errors.ErrUserNotFound
	}
	user.LastSignIn = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	return nil
}

// Search approximates the search_users database function with substring
// matching; similarity is fixed so the merge logic stays exercisable.
func (r *UserRepository) Search(ctx context.Context, query model.UserSearchQuery) ([]*model.UserSearchRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query.Query)
	var rows []*model.UserSearchRow
	for _, user := range r.users {
		haystack := strings.ToLower(user.Username)
		if user.FullName != nil {
			haystack += " " + strings.ToLower(*user.FullName)
		}
		if strings.Contains(haystack, needle) {
			similarity := 1.0
			rows = append(rows, &model.UserSearchRow{UserID: user.ID, Similarity: &similarity})
		}
		if query.Limit > 0 && len(rows) >= query.Limit {
			break
		}
	}
	return rows, nil
}

func (r *UserRepository) Suggested(ctx context.Context, excludeIDs []string, limit int) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	var result []*model.User
	for _, user := range r.users {
		if _, skip := excluded[user.ID]; skip {
			continue
		}
		userCopy := *user
		result = append(result, &userCopy)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}
