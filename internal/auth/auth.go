package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
	"github.com/vicenzoscavino1999/comparador-excel/internal/store"
)

// 业务错误，错误文案即接口返回给前端的提示
var (
	ErrInvalidCredentials = errors.New("Usuario o contraseña incorrectos")
	ErrUserExists         = errors.New("El usuario ya existe")
	ErrEmailExists        = errors.New("El email ya está registrado")
	ErrTokenInvalid       = errors.New("Token inválido")
	ErrTokenExpired       = errors.New("Token expirado o inválido")
)

// Claims 令牌携带的身份信息
type Claims struct {
	Username string
	IsAdmin  bool
}

// Manager 负责密码散列、令牌签发与校验
type Manager struct {
	secret      []byte
	tokenExpiry time.Duration
	store       *store.Store
}

// NewManager 创建认证管理器，secret 为空时生成随机密钥
func NewManager(secret string, tokenHours int, st *store.Store) *Manager {
	if secret == "" {
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		secret = hex.EncodeToString(buf)
		log.Printf("未配置 SECRET_KEY，已生成随机密钥，服务重启后旧令牌全部失效")
	}
	if tokenHours <= 0 {
		tokenHours = 24
	}
	return &Manager{
		secret:      []byte(secret),
		tokenExpiry: time.Duration(tokenHours) * time.Hour,
		store:       st,
	}
}

// HashPassword 生成 bcrypt 散列
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword 校验明文密码与散列是否匹配
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateToken 签发 HS256 访问令牌，sub 为用户名
func (m *Manager) CreateToken(username string, isAdmin bool) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      username,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(m.tokenExpiry).Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken 校验令牌签名与有效期，返回其中的身份信息
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenExpired
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return nil, ErrTokenInvalid
	}
	isAdmin, _ := claims["is_admin"].(bool)
	return &Claims{Username: username, IsAdmin: isAdmin}, nil
}

// Authenticate 核对用户名密码，失败统一返回 ErrInvalidCredentials
func (m *Manager) Authenticate(username, password string) (*model.User, error) {
	user, err := m.store.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// RegisterUser 注册新用户，用户名与邮箱都要求唯一
func (m *Manager) RegisterUser(username, email, password string, isAdmin bool) (*model.User, error) {
	existing, err := m.store.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}
	existing, err = m.store.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	id, err := m.store.CreateUser(username, email, hash, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &model.User{ID: id, Username: username, Email: email, IsAdmin: isAdmin}, nil
}

// IsAdmin 实时读取数据库里的管理员标志，不信任令牌里的声明
func (m *Manager) IsAdmin(username string) (bool, error) {
	user, err := m.store.GetUserByUsername(username)
	if err != nil {
		return false, fmt.Errorf("failed to query user: %w", err)
	}
	return user != nil && user.IsAdmin, nil
}

// EnsureDefaultAdmin 用户表为空且配置了密码时创建默认管理员
func (m *Manager) EnsureDefaultAdmin(username, email, password string) error {
	count, err := m.store.CountUsers()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		log.Printf("未设置 ADMIN_PASSWORD，跳过默认管理员创建")
		return nil
	}
	if _, err := m.RegisterUser(username, email, password, true); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}
	log.Printf("已创建默认管理员: %s", username)
	return nil
}
