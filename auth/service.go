package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/bonerecipes-go/apperror"
	"github.com/user/bonerecipes-go/config"
	"github.com/user/bonerecipes-go/store"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations. The uniqueness pre-checks below are best-effort; a concurrent
// registration can still trip the constraint, and that case must surface as
// the same conflict.
const pgUniqueViolation = "23505"

var whitespaceRegex = regexp.MustCompile(`\s`)

// Service implements the credential and session component: password hashing
// and verification, session token issue/decode, and the account lifecycle.
type Service struct {
	users    store.UserStore
	cfg      config.AuthConfig
	settings config.AppSettings
}

// NewService creates an auth Service with its dependencies injected.
func NewService(users store.UserStore, cfg config.AuthConfig, settings config.AppSettings) *Service {
	return &Service{users: users, cfg: cfg, settings: settings}
}

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// HashPassword runs the plaintext through bcrypt.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// validateRegistration applies the input rules for a new account. Violations
// are ValidationErrors; uniqueness is checked separately.
func (s *Service) validateRegistration(req RegisterRequest) error {
	if nameLen := utf8.RuneCountInString(req.Name); nameLen < 3 || nameLen > 50 {
		return apperror.NewValidationError("name must be between 3 and 50 characters", nil)
	}
	if req.Login == "" {
		return apperror.NewValidationError("login is required", nil)
	}
	if whitespaceRegex.MatchString(req.Login) {
		return apperror.NewValidationError("login cannot contain spaces", nil)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperror.NewValidationError("invalid email address", nil)
	}
	if len(req.Password) < s.settings.MinPasswordLength {
		return apperror.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", s.settings.MinPasswordLength), nil)
	}
	if utf8.RuneCountInString(req.Notes) > s.settings.MaxNotesLength {
		return apperror.NewValidationError(
			fmt.Sprintf("notes cannot exceed %d characters", s.settings.MaxNotesLength), nil)
	}
	return nil
}

// Register validates the request, checks login and email uniqueness, hashes
// the password and creates the user.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*store.User, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)

	// Uniqueness pre-checks. These precede the insert so the common case gets
	// a clean conflict message; the constraint catch below covers the race.
	if _, err := s.users.GetUserByLogin(ctx, req.Login); err == nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("User %s already exists.", req.Login), nil)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NewDatabaseError("failed to check login", err)
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("User with email %s already exists.", email), nil)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NewDatabaseError("failed to check email", err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user, err := s.users.CreateUser(ctx, store.NewUser{
		Name:     req.Name,
		Login:    req.Login,
		Email:    email,
		Password: hashed,
		Notes:    req.Notes,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewConflictError(fmt.Sprintf("User with email %s already exists.", email), nil)
			}
			return nil, apperror.NewConflictError(fmt.Sprintf("User %s already exists.", req.Login), nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "login": user.Login}).Info("user registered")
	return user, nil
}

// Authenticate verifies a login/password pair. A missing login and a wrong
// password produce the same error, so callers cannot enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*store.User, error) {
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		logrus.WithError(err).Error("database error while looking up login")
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	return user, nil
}

// IssueToken encodes the user id into a signed session token with the
// configured absolute expiry.
func (s *Service) IssueToken(userID int64) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.TokenDuration)
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "bonerecipes",
			Subject:   fmt.Sprintf("%d", userID),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// DecodeToken parses and verifies a session token, returning its claims. It
// fails on a bad signature, a malformed token, or an expired one.
func (s *Service) DecodeToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.UserID == 0 {
		return nil, errors.New("token has no user_id claim")
	}
	return claims, nil
}

// ResolveUser decodes a raw cookie value and loads the user it names. All
// three failure modes (no token, undecodable token, token naming a missing
// user) collapse into one AuthError; the optional middleware maps that same
// error to "anonymous" instead.
func (s *Service) ResolveUser(ctx context.Context, tokenString string) (*store.User, error) {
	if tokenString == "" {
		return nil, apperror.NewAuthError("authentication required", nil)
	}
	claims, err := s.DecodeToken(tokenString)
	if err != nil {
		return nil, apperror.NewAuthError("authentication required", err)
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewAuthError("authentication required", nil)
		}
		return nil, apperror.NewDatabaseError("failed to resolve user", err)
	}
	return user, nil
}

// DeleteAccount removes the user. Their recipes are not cascaded.
func (s *Service) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NewNotFoundError("user not found", nil)
		}
		return apperror.NewDatabaseError("failed to delete user", err)
	}
	logrus.WithField("user_id", userID).Info("account deleted")
	return nil
}
