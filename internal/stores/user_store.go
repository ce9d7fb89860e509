// Package stores wraps the database operations for the User collection.
package stores

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"red-social-api/internal/interfaces"
	"red-social-api/internal/schemas"
)

// UserStore is the data-access layer for user records. Reads project
// only the columns a caller may see: login fetches the password hash,
// profile and list reads never do.
type UserStore interface {
	FindByEmailOrNick(ctx context.Context, email, nick string) ([]schemas.User, error)
	FindLoginByEmail(ctx context.Context, email string) (*schemas.User, error)
	FindFullByEmail(ctx context.Context, email string) (*schemas.User, error)
	FindByID(ctx context.Context, id string) (*schemas.User, error)
	List(ctx context.Context, page, perPage int) ([]schemas.User, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, user *schemas.User) error
	UpdateByID(ctx context.Context, id string, changes *schemas.UpdateRequest) (*schemas.User, error)
	SetImage(ctx context.Context, id, image string) error
}

type userStore struct {
	pool interfaces.PgxPoolIface
}

// NewUserStore creates a UserStore backed by the given pool.
func NewUserStore(pool interfaces.PgxPoolIface) UserStore {
	return &userStore{pool: pool}
}

// FindByEmailOrNick returns every user whose email or nick matches the
// given values, compared case-insensitively. Used by the duplicate check.
func (s *userStore) FindByEmailOrNick(ctx context.Context, email, nick string) ([]schemas.User, error) {
	queryString := "SELECT user_id, nick, email FROM users WHERE email = $1 OR nick = $2"
	rows, err := s.pool.Query(ctx, queryString, strings.ToLower(email), strings.ToLower(nick))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]schemas.User, 0)
	for rows.Next() {
		user := schemas.User{}
		if err := rows.Scan(&user.ID, &user.Nick, &user.Email); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// FindLoginByEmail fetches the credential projection for a login
// attempt: password hash, name, nick and id, matched by exact email.
func (s *userStore) FindLoginByEmail(ctx context.Context, email string) (*schemas.User, error) {
	queryString := "SELECT user_id, name, nick, password FROM users WHERE email = $1"
	row := s.pool.QueryRow(ctx, queryString, email)

	user := &schemas.User{}
	if err := row.Scan(&user.ID, &user.Name, &user.Nick, &user.Password); err != nil {
		return nil, err
	}

	return user, nil
}

// FindFullByEmail fetches the complete record, used to populate every
// claim field when a token is issued.
func (s *userStore) FindFullByEmail(ctx context.Context, email string) (*schemas.User, error) {
	queryString := "SELECT user_id, name, surname, nick, email, role, image, created_at FROM users WHERE email = $1"
	row := s.pool.QueryRow(ctx, queryString, email)

	user := &schemas.User{}
	var createdAt time.Time
	if err := row.Scan(&user.ID, &user.Name, &user.Surname, &user.Nick, &user.Email, &user.Role, &user.Image, &createdAt); err != nil {
		return nil, err
	}
	user.CreatedAt = &createdAt

	return user, nil
}

// FindByID fetches the profile projection: everything except the
// password hash and the role.
func (s *userStore) FindByID(ctx context.Context, id string) (*schemas.User, error) {
	queryString := "SELECT user_id, name, surname, nick, email, image, created_at FROM users WHERE user_id = $1"
	row := s.pool.QueryRow(ctx, queryString, id)

	user := &schemas.User{}
	var createdAt time.Time
	if err := row.Scan(&user.ID, &user.Name, &user.Surname, &user.Nick, &user.Email, &user.Image, &createdAt); err != nil {
		return nil, err
	}
	user.CreatedAt = &createdAt

	return user, nil
}

// List returns one page of users sorted by id. The password hash is
// never part of the projection.
func (s *userStore) List(ctx context.Context, page, perPage int) ([]schemas.User, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	queryString := "SELECT user_id, name, surname, nick, email, role, image, created_at FROM users ORDER BY user_id OFFSET $1 LIMIT $2"
	rows, err := s.pool.Query(ctx, queryString, offset, perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]schemas.User, 0, perPage)
	for rows.Next() {
		user := schemas.User{}
		var createdAt time.Time
		if err := rows.Scan(&user.ID, &user.Name, &user.Surname, &user.Nick, &user.Email, &user.Role, &user.Image, &createdAt); err != nil {
			return nil, err
		}
		user.CreatedAt = &createdAt
		users = append(users, user)
	}

	return users, rows.Err()
}

// Count returns the total number of users in the collection.
func (s *userStore) Count(ctx context.Context) (int, error) {
	var total int
	row := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users")
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Insert stores a new user record. Email and nick are lower-cased at
// write time so the duplicate check stays case-insensitive.
func (s *userStore) Insert(ctx context.Context, user *schemas.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt == nil {
		now := time.Now()
		user.CreatedAt = &now
	}
	user.Email = strings.ToLower(user.Email)
	user.Nick = strings.ToLower(user.Nick)

	queryString := "INSERT INTO users (user_id, name, surname, nick, email, password, role, image, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)"
	_, err := s.pool.Exec(ctx, queryString,
		user.ID, user.Name, user.Surname, user.Nick, user.Email, user.Password, user.Role, user.Image, *user.CreatedAt)
	return err
}

// UpdateByID merges the supplied fields into the record and returns the
// updated row. Absent fields keep their stored values; role, image and
// the token timestamps are not mergeable at all. Returns pgx.ErrNoRows
// when the target id does not exist.
func (s *userStore) UpdateByID(ctx context.Context, id string, changes *schemas.UpdateRequest) (*schemas.User, error) {
	queryString := `UPDATE users SET
		name = COALESCE($2, name),
		surname = COALESCE($3, surname),
		nick = COALESCE(LOWER($4), nick),
		email = COALESCE(LOWER($5), email),
		password = COALESCE($6, password)
		WHERE user_id = $1
		RETURNING user_id, name, surname, nick, email, role, image, created_at`

	row := s.pool.QueryRow(ctx, queryString, id,
		changes.Name, changes.Surname, changes.Nick, changes.Email, changes.Password)

	user := &schemas.User{}
	var createdAt time.Time
	if err := row.Scan(&user.ID, &user.Name, &user.Surname, &user.Nick, &user.Email, &user.Role, &user.Image, &createdAt); err != nil {
		return nil, err
	}
	user.CreatedAt = &createdAt

	return user, nil
}

// SetImage persists the avatar reference for the given user.
func (s *userStore) SetImage(ctx context.Context, id, image string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE users SET image = $2 WHERE user_id = $1", id, image)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
