package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/vr-rental-reservation/internal/config"
	"github.com/iliyamo/vr-rental-reservation/internal/model"
	"github.com/iliyamo/vr-rental-reservation/internal/utils"
)

type userStoreStub struct {
	users   map[string]model.User
	nextID  uint64
	creates int
}

func newUserStoreStub() *userStoreStub {
	return &userStoreStub{users: map[string]model.User{}, nextID: 1}
}

func (s *userStoreStub) Create(ctx context.Context, name, email, password string, cost int) (uint64, error) {
	s.creates++
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	id := s.nextID
	s.nextID++
	s.users[email] = model.User{ID: id, Name: name, Email: email, PasswordHash: hash}
	return id, nil
}

func (s *userStoreStub) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, ok := s.users[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", AccessTTLMin: 5, BcryptCost: bcrypt.MinCost}
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister(t *testing.T) {
	e := echo.New()

	t.Run("new email creates exactly one user", func(t *testing.T) {
		store := newUserStoreStub()
		h := NewAuthHandler(testConfig(), store)

		c, rec := postJSON(e, "/api/register", `{"email":"a@example.com","name":"A","password":"pw"}`)
		if err := h.Register(c); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if store.creates != 1 {
			t.Errorf("creates = %d, want 1", store.creates)
		}
	})

	t.Run("same email is idempotent", func(t *testing.T) {
		store := newUserStoreStub()
		h := NewAuthHandler(testConfig(), store)

		c, rec := postJSON(e, "/api/register", `{"email":"a@example.com","name":"A","password":"pw"}`)
		_ = h.Register(c)
		var first struct {
			UserID uint64 `json:"userId"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &first)

		c2, rec2 := postJSON(e, "/api/register", `{"email":"a@example.com","name":"A","password":"pw"}`)
		if err := h.Register(c2); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if rec2.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 for existing email", rec2.Code)
		}
		var second struct {
			UserID uint64 `json:"userId"`
		}
		_ = json.Unmarshal(rec2.Body.Bytes(), &second)
		if first.UserID != second.UserID {
			t.Errorf("ids differ across re-registration: %d vs %d", first.UserID, second.UserID)
		}
		if store.creates != 1 {
			t.Errorf("creates = %d, want 1 (no duplicate row)", store.creates)
		}
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		store := newUserStoreStub()
		h := NewAuthHandler(testConfig(), store)

		c, _ := postJSON(e, "/api/register", `{"email":"a@example.com","name":"A","password":"pw"}`)
		_ = h.Register(c)
		c2, rec2 := postJSON(e, "/api/register", `{"email":"  A@Example.COM ","name":"A","password":"pw"}`)
		_ = h.Register(c2)
		if rec2.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 for case-variant of existing email", rec2.Code)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		h := NewAuthHandler(testConfig(), newUserStoreStub())
		for _, body := range []string{
			`{"email":"a@example.com","name":"A"}`,
			`{"email":"a@example.com","password":"pw"}`,
			`{"name":"A","password":"pw"}`,
		} {
			c, rec := postJSON(e, "/api/register", body)
			_ = h.Register(c)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("body %s: status = %d, want 400", body, rec.Code)
			}
		}
	})
}

func TestLogin(t *testing.T) {
	e := echo.New()

	t.Run("unknown email unauthorized", func(t *testing.T) {
		h := NewAuthHandler(testConfig(), newUserStoreStub())
		c, rec := postJSON(e, "/api/login", `{"email":"ghost@example.com","password":"pw"}`)
		if err := h.Login(c); err != nil {
			t.Fatalf("Login: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		store := newUserStoreStub()
		_, _ = store.Create(context.Background(), "A", "a@example.com", "right", bcrypt.MinCost)
		h := NewAuthHandler(testConfig(), store)

		c, rec := postJSON(e, "/api/login", `{"email":"a@example.com","password":"wrong"}`)
		_ = h.Login(c)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid credentials return identity and token", func(t *testing.T) {
		store := newUserStoreStub()
		_, _ = store.Create(context.Background(), "A", "a@example.com", "right", bcrypt.MinCost)
		h := NewAuthHandler(testConfig(), store)

		c, rec := postJSON(e, "/api/login", `{"email":"a@example.com","password":"right"}`)
		if err := h.Login(c); err != nil {
			t.Fatalf("Login: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp struct {
			UserID   uint64 `json:"userId"`
			UserName string `json:"userName"`
			Token    string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.UserID != 1 || resp.UserName != "A" {
			t.Errorf("identity = %d/%q, want 1/A", resp.UserID, resp.UserName)
		}
		if resp.Token == "" {
			t.Error("no access token in response")
		}
	})
}
