package services

import (
	"context"
	"errors"
	"fmt"

	"nss-backend/internal/auth"
	"nss-backend/internal/models"
	"nss-backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown email and wrong password,
// so the response does not leak which one failed
var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	userRepo *repositories.UserRepository
	jwt      *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, jwt *auth.JWTManager) *UserService {
	return &UserService{userRepo: userRepo, jwt: jwt}
}

// Login verifies the credentials and returns a signed token with the user
func (s *UserService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID, user.Role, user.Wing)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

// GetUser returns a user by id
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// AttendanceSummarizer yields ledger aggregates for a set of
// volunteers. Satisfied by *repositories.AttendanceRepository.
type AttendanceSummarizer interface {
	SummariesFor(ctx context.Context, volunteerIDs []string) (map[string]models.VolunteerSummary, error)
}

// Roster returns the volunteers visible to the caller with their
// ledger aggregates: mentors see their assigned volunteers, the
// secretary sees everyone
func (s *UserService) Roster(ctx context.Context, callerID, callerRole string, summarizer AttendanceSummarizer) ([]models.RosterEntry, error) {
	var (
		volunteers []models.User
		err        error
	)

	switch callerRole {
	case models.RoleSecretary:
		volunteers, err = s.userRepo.ListVolunteers(ctx)
	case models.RoleMentor:
		volunteers, err = s.userRepo.ListVolunteersForMentor(ctx, callerID)
	default:
		return nil, fmt.Errorf("role %q has no roster", callerRole)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(volunteers))
	for i, v := range volunteers {
		ids[i] = v.ID
	}

	summaries := map[string]models.VolunteerSummary{}
	if len(ids) > 0 {
		summaries, err = summarizer.SummariesFor(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]models.RosterEntry, len(volunteers))
	for i, v := range volunteers {
		summary := summaries[v.ID]
		entries[i] = models.RosterEntry{
			ID:             v.ID,
			Name:           v.Name,
			RollNumber:     v.RollNumber,
			Wing:           v.Wing,
			TotalHours:     summary.TotalHours,
			EventsAttended: summary.EventsAttended,
		}
	}
	return entries, nil
}
