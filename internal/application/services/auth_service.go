package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/infrastructure/config"
	"github.com/tasksystem/core/internal/infrastructure/logger"
	"github.com/tasksystem/core/internal/ports"
)

// Claims represents the JWT claims
type Claims struct {
	UserID string        `json:"user_id"`
	Email  string        `json:"email"`
	Role   entities.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo  ports.UserRepository
	notifier  ports.Notifier
	jwtConfig config.JWTConfig
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, notifier ports.Notifier, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		notifier:  notifier,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	// Check if user already exists. Only a not-found answer means the
	// identity is free, anything else is a lookup failure.
	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !entities.IsKind(err, entities.KindNotFound) {
		return nil, fmt.Errorf("check email availability: %w", err)
	}
	if existingUser != nil {
		return nil, entities.Conflictf("user with email %s already exists", req.Email)
	}

	existingUser, err = s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil && !entities.IsKind(err, entities.KindNotFound) {
		return nil, fmt.Errorf("check username availability: %w", err)
	}
	if existingUser != nil {
		return nil, entities.Conflictf("user with username %s already exists", req.Username)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         entities.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	createdUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infow("User registered successfully", "user_id", createdUser.ID, "email", createdUser.Email)

	s.broadcastRegistration(ctx, createdUser)

	accessToken, err := s.generateAccessToken(createdUser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &ports.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
		User:        createdUser,
	}, nil
}

// Login authenticates a user and returns a bearer token. The identity
// resolves by email when the input contains "@", by username otherwise.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	var user *entities.User
	var err error

	if strings.Contains(req.UsernameOrEmail, "@") {
		user, err = s.userRepo.GetByEmail(ctx, req.UsernameOrEmail)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, req.UsernameOrEmail)
	}
	if err != nil {
		s.logger.Warnw("Login attempt with unknown identity", "identity", req.UsernameOrEmail)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warnw("Login attempt with invalid password", "user_id", user.ID)
		return nil, entities.Unauthorizedf("invalid credentials")
	}

	s.logger.Infow("User logged in successfully", "user_id", user.ID, "email", user.Email)

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &ports.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
		User:        user,
	}, nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, entities.Unauthorizedf("invalid token").Wrap(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, entities.Unauthorizedf("invalid token claims")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, entities.Unauthorizedf("invalid token subject").Wrap(err)
	}

	return &ports.Claims{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (s *AuthService) generateAccessToken(user *entities.User) (string, error) {
	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// broadcastRegistration tells everyone with a linked chat about the new
// account. Delivery problems must not fail the registration itself.
func (s *AuthService) broadcastRegistration(ctx context.Context, newUser *entities.User) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		s.logger.Warnw("Failed to load users for registration broadcast", "error", err)
		return
	}

	recipients := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		if u.ID != newUser.ID {
			recipients = append(recipients, u.ID)
		}
	}

	text := fmt.Sprintf("New user registered: %s %s (%s)", newUser.FirstName, newUser.LastName, newUser.Username)
	if err := s.notifier.NotifyUsers(ctx, recipients, text); err != nil {
		s.logger.Warnw("Failed to broadcast registration", "error", err)
	}
}
