package auth_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vicenzoscavino1999/comparador-excel/internal/auth"
	"github.com/vicenzoscavino1999/comparador-excel/internal/store"
)

const testSecret = "clave-de-prueba"

// newTestManager 建一个带临时库的认证管理器
func newTestManager(t *testing.T) (*auth.Manager, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "comparador.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return auth.NewManager(testSecret, 24, st), st
}

// TestHashAndVerifyPassword 密码散列与校验
func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("secreto123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "secreto123" || hash == "" {
		t.Fatalf("hash should not echo the password")
	}
	if !auth.VerifyPassword("secreto123", hash) {
		t.Fatalf("correct password rejected")
	}
	if auth.VerifyPassword("otra", hash) {
		t.Fatalf("wrong password accepted")
	}
}

// TestCreateAndVerifyToken 令牌签发与解析
func TestCreateAndVerifyToken(t *testing.T) {
	m, _ := newTestManager(t)

	token, err := m.CreateToken("maria", true)
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}

	claims, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Username != "maria" || !claims.IsAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

// TestVerifyToken_Rejections 过期、伪造与缺失 sub 的令牌
func TestVerifyToken_Rejections(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.VerifyToken("no-es-un-token"); !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("garbage token: want ErrTokenExpired got %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "maria",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := m.VerifyToken(signed); !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("expired token: want ErrTokenExpired got %v", err)
	}

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err = noSub.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := m.VerifyToken(signed); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Fatalf("token without sub: want ErrTokenInvalid got %v", err)
	}

	other := auth.NewManager("otra-clave", 24, nil)
	token, err := other.CreateToken("maria", false)
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}
	if _, err := m.VerifyToken(token); !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("foreign signature: want ErrTokenExpired got %v", err)
	}
}

// TestAuthenticate 用户名密码登录
func TestAuthenticate(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.RegisterUser("maria", "maria@example.com", "secreto123", false); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	user, err := m.Authenticate("maria", "secreto123")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.Username != "maria" || user.IsAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := m.Authenticate("maria", "mala"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials got %v", err)
	}
	if _, err := m.Authenticate("nadie", "secreto123"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials got %v", err)
	}
}

// TestRegisterUser_Duplicates 重复用户名与重复邮箱
func TestRegisterUser_Duplicates(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.RegisterUser("maria", "maria@example.com", "s", false); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if _, err := m.RegisterUser("maria", "otra@example.com", "s", false); !errors.Is(err, auth.ErrUserExists) {
		t.Fatalf("want ErrUserExists got %v", err)
	}
	if _, err := m.RegisterUser("otra", "maria@example.com", "s", false); !errors.Is(err, auth.ErrEmailExists) {
		t.Fatalf("want ErrEmailExists got %v", err)
	}
}

// TestEnsureDefaultAdmin 仅在空库且配置密码时创建管理员
func TestEnsureDefaultAdmin(t *testing.T) {
	m, st := newTestManager(t)

	if err := m.EnsureDefaultAdmin("admin", "admin@example.com", ""); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}
	if n, _ := st.CountUsers(); n != 0 {
		t.Fatalf("no admin expected without password, count=%d", n)
	}

	if err := m.EnsureDefaultAdmin("admin", "admin@example.com", "cambiar-ya"); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}
	admin, err := st.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if admin == nil || !admin.IsAdmin {
		t.Fatalf("default admin not created: %+v", admin)
	}

	if err := m.EnsureDefaultAdmin("otro", "otro@example.com", "cambiar-ya"); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}
	if n, _ := st.CountUsers(); n != 1 {
		t.Fatalf("non-empty table should skip bootstrap, count=%d", n)
	}
}
