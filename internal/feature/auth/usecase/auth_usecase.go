package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tasktrack/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// sessionTokenBytes is the entropy of a session token before hex encoding.
	sessionTokenBytes = 32
)

// dummyHash is a valid bcrypt hash compared against when the email is
// unknown, so login takes the same time whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists when the
	// email is already registered.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user with the given email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user with the given ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// authUsecase implements registration, login and session management.
type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	sessionTTL time.Duration
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register creates a new account with a bcrypt-hashed password and returns it.
// It returns ErrEmailAlreadyExists when the email is already taken; the
// existing account is left untouched.
func (u *authUsecase) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Email: email, Password: string(hashed), Name: name}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user by email and password.
// The bcrypt comparison always runs, against a dummy hash when the email is
// unknown, to avoid leaking account existence through timing. The returned
// error is ErrInvalidCredentials in both failure cases; the distinction is
// only logged.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, findErr := u.users.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if findErr == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if findErr != nil || compareErr != nil {
		reason := "password mismatch"
		if findErr != nil {
			reason = "unknown email"
		}
		slog.Debug("login rejected", "reason", reason, "email", email)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueSession creates a session record for the user and returns it.
// The session ID is the token handed to the client.
func (u *authUsecase) IssueSession(ctx context.Context, user *entity.User, userAgent, ip string) (*entity.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &entity.Session{
		ID:        token,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ip,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

// ResolveSession returns the user owning a valid session token.
// Expired and revoked sessions behave as anonymous; a session pointing at a
// user record that no longer exists yields ErrUserNotFound.
func (u *authUsecase) ResolveSession(ctx context.Context, token string) (*entity.User, error) {
	session, err := u.sessions.FindByID(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Stale reference: the session outlived its user record.
			slog.Warn("session references missing user", "user_id", session.UserID)
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the session for the given token.
// Other sessions of the same user stay valid.
func (u *authUsecase) Logout(ctx context.Context, token string) error {
	return u.sessions.Revoke(ctx, token)
}

// PurgeExpiredSessions deletes expired session records and returns the count.
func (u *authUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}

// generateSessionToken returns a cryptographically random hex token.
func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
