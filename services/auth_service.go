package services

import (
	"context"
	"time"

	"listener-api/models"
	"listener-api/repositories"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const TokenTypeBearer = "bearer"

// Claims carries the account email as the subject.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret     []byte
	Expiration time.Duration
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string, user *models.User) (*models.LogoutResponse, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	EnsureSuperuser(ctx context.Context, email, username, password string) error
}

type authService struct {
	userRepo  repositories.UserRepository
	blacklist repositories.TokenBlacklistRepository
	tokens    TokenConfig
	logger    *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepository, blacklist repositories.TokenBlacklistRepository, tokens TokenConfig, logger *zap.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		blacklist: blacklist,
		tokens:    tokens,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := checkUnique(ctx, s.userRepo, 0, &req.Email, &req.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, uniqueErr(err, "Registration failed")
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	invalid := models.ErrorUnauthorized{Message: "Incorrect username or password"}

	var (
		user *models.User
		err  error
	)
	user, err = s.userRepo.GetByUsername(ctx, req.Username)
	if isNotFound(err) {
		user, err = s.userRepo.GetByEmail(ctx, req.Username)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, invalid
	}
	if !user.IsActive {
		return nil, models.ErrorBadRequest{Message: "Inactive user"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		User:        *user,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string, user *models.User) (*models.LogoutResponse, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.tokens.Expiration)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.blacklist.Add(ctx, token, expiresAt); err != nil {
		return nil, err
	}

	return &models.LogoutResponse{
		Message: "Successfully logged out",
		User:    *user,
	}, nil
}

// Authenticate resolves a bearer token to its user. Revoked, malformed and
// expired tokens are all reported as 401.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, models.ErrorUnauthorized{Message: "Token has been revoked"}
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if isNotFound(err) {
			return nil, models.ErrorUnauthorized{Message: "Could not validate credentials"}
		}
		return nil, err
	}
	return user, nil
}

// EnsureSuperuser creates the bootstrap account, or promotes it when it
// already exists.
func (s *authService) EnsureSuperuser(ctx context.Context, email, username, password string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if user.IsSuperuser {
			return nil
		}
		user.IsSuperuser = true
		return s.userRepo.Update(ctx, user)
	}
	if !isNotFound(err) {
		return err
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return err
	}
	user = &models.User{
		Email:       email,
		Username:    username,
		Password:    hashedPassword,
		IsActive:    true,
		IsSuperuser: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Info("superuser created", zap.String("email", email))
	return nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokens.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.tokens.Secret)
}

func (s *authService) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.tokens.Secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, models.ErrorUnauthorized{Message: "Could not validate credentials"}
	}
	return claims, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// checkUnique rejects an email or username already used by an account other
// than selfID. Nil values are skipped.
func checkUnique(ctx context.Context, userRepo repositories.UserRepository, selfID uint, email, username *string) error {
	if email != nil {
		existing, err := userRepo.GetByEmail(ctx, *email)
		if err == nil && existing.ID != selfID {
			return models.ErrorBadRequest{Message: "Email already registered"}
		}
		if err != nil && !isNotFound(err) {
			return err
		}
	}
	if username != nil {
		existing, err := userRepo.GetByUsername(ctx, *username)
		if err == nil && existing.ID != selfID {
			return models.ErrorBadRequest{Message: "Username already taken"}
		}
		if err != nil && !isNotFound(err) {
			return err
		}
	}
	return nil
}
