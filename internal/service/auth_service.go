package service

import (
	"context"
	"errors"
	"time"

	"exam-service/internal/event"
	"exam-service/internal/models"
	"exam-service/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the payload of an issued auth token. The jti (RegisteredClaims.ID)
// is tracked in redis so logout can kill a token before it expires.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Role   int    `json:"role"`
}

type AuthService struct {
	Users  *repository.UserRepository
	Tokens *repository.TokenRepository
	Events *event.Publisher

	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(users *repository.UserRepository, tokens *repository.TokenRepository, events *event.Publisher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		Users:     users,
		Tokens:    tokens,
		Events:    events,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Signup creates an account. The stored password is a bcrypt hash; the
// plaintext never leaves this function.
func (s *AuthService) Signup(ctx context.Context, user *models.User) error {
	if user.Name == "" || user.Email == "" || user.Password == "" {
		return Validation("name, email and password are required")
	}

	_, err := s.Users.FindByEmail(ctx, user.Email)
	if err == nil {
		return Conflict("User already exists")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	if user.Role != models.RoleAdmin {
		user.Role = models.RoleUser
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.Users.Create(ctx, user); err != nil {
		return err
	}
	s.Events.Publish("user.signup", map[string]string{"userId": user.ID.Hex()})
	return nil
}

type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password deliberately share one message so the response does not reveal
// which part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound("Email or password is incorrect")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, Unauthorized("Email or password is incorrect")
	}

	jti := primitive.NewObjectID().Hex()
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Issuer:    "exam-service",
		},
		UserID: user.ID.Hex(),
		Role:   user.Role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if err := s.Tokens.Save(ctx, jti, claims.UserID, s.tokenTTL); err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Logout revokes the presented token by deleting its jti.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	return s.Tokens.Revoke(ctx, claims.ID)
}

// VerifyToken parses and validates a token string and checks the jti is
// still live. Every failure collapses to Unauthorized.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, Unauthorized("Unauthorized")
	}

	live, err := s.Tokens.Exists(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, Unauthorized("Unauthorized")
	}
	return claims, nil
}
