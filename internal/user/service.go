package user

import (
	"context"
	"errors"
	"fmt"

	"quincho/internal/auth"

	"github.com/google/uuid"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ReservationRemover deletes every reservation owned by a user.
// Implemented by reservation.Service; account deletion cascades
// through it before the user row goes.
type ReservationRemover interface {
	RemoveForUser(ctx context.Context, userID string) (int64, error)
}

// Notifier queues admin notifications. Implemented by
// notifier.Service.
type Notifier interface {
	NotifyAdmin(ctx context.Context, notifType, subject, body string)
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *User, error)
	GetByID(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error)
	List(ctx context.Context) ([]User, error)
	AdminUpdate(ctx context.Context, userID string, req AdminUpdateRequest) (*User, error)
	Delete(ctx context.Context, userID string) (removedReservations int64, err error)
}

type service struct {
	repo          Repository
	reservations  ReservationRemover
	notifier      Notifier
	accessSecret  string
	refreshSecret string
	adminEmail    string
	newID         func() string
}

func NewService(repo Repository, reservations ReservationRemover, notifier Notifier, accessSecret, refreshSecret, adminEmail string) Service {
	return &service{
		repo:          repo,
		reservations:  reservations,
		notifier:      notifier,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		adminEmail:    adminEmail,
		newID:         uuid.NewString,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	pinHash, err := auth.HashPIN(req.PIN)
	if err != nil {
		return nil, "", "", err
	}

	role := auth.RoleMember
	if req.Email == s.adminEmail {
		role = auth.RoleAdmin
	}

	created, err := s.repo.Create(ctx, User{
		ID:         s.newID(),
		Email:      req.Email,
		Name:       req.Name,
		Surname:    req.Surname,
		Department: req.Department,
		PINHash:    pinHash,
		Role:       role,
	})
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		created.ID,
		created.Email,
		created.Role,
		s.accessSecret,
		s.refreshSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	s.notifier.NotifyAdmin(ctx, "new_user",
		"New user registered",
		fmt.Sprintf("%s %s (%s) from %s registered.",
			created.Name, created.Surname, created.Email, created.Department))

	return created, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPIN(u.PINHash, req.PIN) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		u.ID,
		u.Email,
		u.Role,
		s.accessSecret,
		s.refreshSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return u, accessToken, refreshToken, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.refreshSecret, s.accessSecret)
	if err != nil {
		return "", nil, err
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrUserNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(u.ID, u.Email, u.Role, s.accessSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, u, nil
}

func (s *service) GetByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileFields(u, req.Name, req.Surname, req.Department)

	if req.PIN != "" {
		pinHash, err := auth.HashPIN(req.PIN)
		if err != nil {
			return nil, err
		}
		u.PINHash = pinHash
	}

	return s.repo.Update(ctx, *u)
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) AdminUpdate(ctx context.Context, userID string, req AdminUpdateRequest) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileFields(u, req.Name, req.Surname, req.Department)

	if req.PIN != "" {
		pinHash, err := auth.HashPIN(req.PIN)
		if err != nil {
			return nil, err
		}
		u.PINHash = pinHash
	}

	if req.Role != "" {
		u.Role = req.Role
	}

	return s.repo.Update(ctx, *u)
}

// Delete removes the account and, first, every reservation the user
// owns. The reservation sweep runs before the row delete so a failed
// sweep leaves the account intact.
func (s *service) Delete(ctx context.Context, userID string) (int64, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return 0, err
	}

	removed, err := s.reservations.RemoveForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return removed, err
	}

	return removed, nil
}

func applyProfileFields(u *User, name, surname, department string) {
	if name != "" {
		u.Name = name
	}
	if surname != "" {
		u.Surname = surname
	}
	if department != "" {
		u.Department = department
	}
}
