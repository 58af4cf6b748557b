package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/repository"
)

// 认证相关错误（http层据此映射状态码）
var (
	ErrEmailRegistered    = errors.New("Email already registered")
	ErrInvalidLogin       = errors.New("Incorrect email or password")
	ErrInvalidToken       = errors.New("Could not validate credentials")
	ErrMissingCredentials = errors.New("email and password are required")
)

// 演示模式的固定令牌（DEMO_LOGIN 开启时绕过JWT校验）
const demoToken = "demo-token"

// SignupRequest 注册请求
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Age      *int   `json:"age"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// AuthService 认证服务接口
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*domain.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Authenticate 校验Bearer令牌并加载当前用户
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// authService 实现
type authService struct {
	usersRepo     repository.UsersRepository
	jwtSecret     []byte
	tokenLifetime time.Duration
	demoLogin     bool
	logger        *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(usersRepo repository.UsersRepository, jwtSecret string, expireMinutes int, demoLogin bool, logger *zap.Logger) AuthService {
	return &authService{
		usersRepo:     usersRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenLifetime: time.Duration(expireMinutes) * time.Minute,
		demoLogin:     demoLogin,
		logger:        logger,
	}
}

// Signup 注册新用户
func (s *authService) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	// 邮箱唯一性检查
	if _, err := s.usersRepo.GetUserByEmail(ctx, req.Email); err == nil {
		s.logger.Warn("Signup rejected: email already registered",
			zap.String("email", req.Email),
		)
		return nil, ErrEmailRegistered
	} else if !strings.Contains(err.Error(), "not found") {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleElder
	}
	switch role {
	case domain.RoleElder, domain.RoleCaregiver, domain.RoleAdmin:
	default:
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         role,
		Phone:        sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Address:      sql.NullString{String: req.Address, Valid: req.Address != ""},
	}
	if req.Age != nil {
		user.Age = sql.NullInt64{Int64: int64(*req.Age), Valid: true}
	}

	userID, err := s.usersRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.UserID = userID

	s.logger.Info("User registered",
		zap.String("user_id", userID),
		zap.String("role", role),
	)
	return user, nil
}

// Login 用户登录，签发HS256访问令牌
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.usersRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Login failed: user not found",
			zap.String("email", req.Email),
		)
		return nil, ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login failed: password mismatch",
			zap.String("user_id", user.UserID),
		)
		return nil, ErrInvalidLogin
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.Email,
		"role": user.Role,
		"id":   user.UserID,
		"exp":  time.Now().Add(s.tokenLifetime).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role),
	)
	return &LoginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		Role:        user.Role,
	}, nil
}

// Authenticate 校验令牌并返回用户
// DEMO_LOGIN 开启时固定令牌直接返回演示用户（开发环境免登录入口）
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	if s.demoLogin && tokenString == demoToken {
		return demoUser(), nil
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.usersRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// demoUser 演示用户（不落库）
func demoUser() *domain.User {
	return &domain.User{
		UserID:   "00000000-0000-0000-0000-000000000999",
		Email:    "demo@elder.com",
		FullName: "Demo Elder",
		Role:     domain.RoleElder,
		EmergencyContacts: sql.NullString{
			String: `[{"name": "Demo Doctor", "phone": "1234567890", "relation": "Doctor"}]`,
			Valid:  true,
		},
	}
}
