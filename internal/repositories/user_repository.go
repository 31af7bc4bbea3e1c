package repositories

import (
	"context"
	"errors"

	"nss-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// GetByEmail looks a user up for login
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, COALESCE(roll_number, ''), COALESCE(wing, ''), created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRow(ctx, query, email))
}

// GetByID returns a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, COALESCE(roll_number, ''), COALESCE(wing, ''), created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRow(ctx, query, id))
}

// ListVolunteers returns all volunteer accounts (secretary roster)
func (r *UserRepository) ListVolunteers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, COALESCE(roll_number, ''), COALESCE(wing, ''), created_at
		FROM users
		WHERE role = 'volunteer'
		ORDER BY name
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// ListVolunteersForMentor returns the volunteers assigned to a mentor
func (r *UserRepository) ListVolunteersForMentor(ctx context.Context, mentorID string) ([]models.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.role, COALESCE(u.roll_number, ''), COALESCE(u.wing, ''), u.created_at
		FROM users u
		JOIN mentor_assignments ma ON ma.volunteer_id = u.id
		WHERE ma.mentor_id = $1
		ORDER BY u.name
	`

	rows, err := r.DB.Query(ctx, query, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *UserRepository) scanOne(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.RollNumber, &u.Wing, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUsers(rows pgx.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.RollNumber, &u.Wing, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
