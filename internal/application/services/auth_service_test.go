package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/infrastructure/config"
	"github.com/tasksystem/core/internal/ports"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:    "test-secret-at-least-32-characters!!",
		ExpiresIn: time.Hour,
		Issuer:    "tasksystem-test",
	}
}

func newAuthFixture(users ...*entities.User) (*AuthService, *fakeUserRepo, *recordingNotifier) {
	userRepo := newFakeUserRepo(users...)
	notifier := &recordingNotifier{}
	service := NewAuthService(userRepo, notifier, testJWTConfig(), testLogger())
	return service, userRepo, notifier
}

func validRegisterRequest() ports.RegisterRequest {
	return ports.RegisterRequest{
		Email:          "new.user@example.com",
		Password:       "Str0ng!Pass",
		RepeatPassword: "Str0ng!Pass",
		Username:       "newuser",
		FirstName:      "Nora",
		LastName:       "Usher",
	}
}

func hashedTestUser(username, email, password string) *entities.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         entities.RoleUser,
	}
}

func TestAuthService_RegisterIssuesValidToken(t *testing.T) {
	service, _, _ := newAuthFixture()

	resp, err := service.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.TokenType != "Bearer" {
		t.Errorf("Unexpected token type: %q", resp.TokenType)
	}
	if resp.User.Role != entities.RoleUser {
		t.Errorf("Expected USER role for new accounts, got %s", resp.User.Role)
	}

	claims, err := service.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Error("Expected token subject to match the new user")
	}
	if claims.Email != resp.User.Email {
		t.Errorf("Unexpected claims email: %q", claims.Email)
	}
}

func TestAuthService_RegisterRejectsDuplicateEmail(t *testing.T) {
	existing := hashedTestUser("taken", "new.user@example.com", "whatever1!A")
	service, _, _ := newAuthFixture(existing)

	_, err := service.Register(context.Background(), validRegisterRequest())
	if !entities.IsKind(err, entities.KindConflict) {
		t.Fatalf("Expected conflict error, got %v", err)
	}
}

func TestAuthService_RegisterRejectsDuplicateUsername(t *testing.T) {
	existing := hashedTestUser("newuser", "other@example.com", "whatever1!A")
	service, _, _ := newAuthFixture(existing)

	_, err := service.Register(context.Background(), validRegisterRequest())
	if !entities.IsKind(err, entities.KindConflict) {
		t.Fatalf("Expected conflict error, got %v", err)
	}
}

// outageUserRepo simulates a user store whose lookups fail outright.
type outageUserRepo struct {
	*fakeUserRepo
	lookupErr error
}

func (r *outageUserRepo) GetByEmail(_ context.Context, _ string) (*entities.User, error) {
	return nil, r.lookupErr
}

func TestAuthService_RegisterSurfacesLookupFailure(t *testing.T) {
	userRepo := &outageUserRepo{
		fakeUserRepo: newFakeUserRepo(),
		lookupErr:    errors.New("connection refused"),
	}
	service := NewAuthService(userRepo, &recordingNotifier{}, testJWTConfig(), testLogger())

	_, err := service.Register(context.Background(), validRegisterRequest())
	if err == nil {
		t.Fatal("Expected lookup failure to abort registration")
	}
	if entities.IsKind(err, entities.KindConflict) || entities.IsKind(err, entities.KindNotFound) {
		t.Errorf("Expected infrastructure error to pass through untyped, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Expected underlying cause in error, got %q", err.Error())
	}
	if len(userRepo.users) != 0 {
		t.Error("Expected no account to be created on lookup failure")
	}
}

func TestAuthService_RegisterBroadcastsToExistingUsers(t *testing.T) {
	existing := hashedTestUser("veteran", "veteran@example.com", "whatever1!A")
	service, _, notifier := newAuthFixture(existing)

	resp, err := service.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	texts := notifier.sentTo(existing.ID)
	if len(texts) != 1 {
		t.Fatalf("Expected 1 broadcast to existing user, got %d", len(texts))
	}
	if !strings.Contains(texts[0], "New user registered:") {
		t.Errorf("Unexpected broadcast text: %q", texts[0])
	}

	if len(notifier.sentTo(resp.User.ID)) != 0 {
		t.Error("Expected no broadcast to the new user itself")
	}
}

func TestAuthService_LoginByUsername(t *testing.T) {
	user := hashedTestUser("nora", "nora@example.com", "Str0ng!Pass")
	service, _, _ := newAuthFixture(user)

	resp, err := service.Login(context.Background(), ports.LoginRequest{UsernameOrEmail: "nora", Password: "Str0ng!Pass"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.User.ID != user.ID {
		t.Error("Expected the stored user to be returned")
	}
}

func TestAuthService_LoginByEmail(t *testing.T) {
	user := hashedTestUser("nora", "nora@example.com", "Str0ng!Pass")
	service, _, _ := newAuthFixture(user)

	_, err := service.Login(context.Background(), ports.LoginRequest{UsernameOrEmail: "nora@example.com", Password: "Str0ng!Pass"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	user := hashedTestUser("nora", "nora@example.com", "Str0ng!Pass")
	service, _, _ := newAuthFixture(user)

	_, err := service.Login(context.Background(), ports.LoginRequest{UsernameOrEmail: "nora", Password: "wrong"})
	if !entities.IsKind(err, entities.KindUnauthorized) {
		t.Fatalf("Expected unauthorized error, got %v", err)
	}
}

func TestAuthService_LoginUnknownIdentity(t *testing.T) {
	service, _, _ := newAuthFixture()

	_, err := service.Login(context.Background(), ports.LoginRequest{UsernameOrEmail: "ghost", Password: "whatever"})
	if !entities.IsKind(err, entities.KindNotFound) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}

func TestAuthService_ValidateTokenGarbage(t *testing.T) {
	service, _, _ := newAuthFixture()

	_, err := service.ValidateToken("not.a.token")
	if !entities.IsKind(err, entities.KindUnauthorized) {
		t.Fatalf("Expected unauthorized error, got %v", err)
	}
}

func TestAuthService_ValidateTokenWrongSecret(t *testing.T) {
	service, _, _ := newAuthFixture()

	resp, err := service.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	otherConfig := testJWTConfig()
	otherConfig.Secret = "a-completely-different-secret-value!"
	other := NewAuthService(newFakeUserRepo(), &recordingNotifier{}, otherConfig, testLogger())

	if _, err := other.ValidateToken(resp.AccessToken); err == nil {
		t.Fatal("Expected error for token signed with another secret")
	}
}
