package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upaay/backend/internal/auth"
	"upaay/backend/internal/auth/jwt"
	"upaay/backend/internal/middleware"
	"upaay/backend/internal/storage/memory"
)

const testSecret = "test-secret-key-32-characters-long-minimum"

func newTestRouter(t *testing.T, rasaURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := auth.NewService(memory.NewStore())
	jwtManager := jwt.NewManager(testSecret, "upaay", 24*time.Hour)
	handler := NewAuthHandler(authService, jwtManager, nil, nil)
	relay := NewRasaRelay(rasaURL, nil)
	jwtAuth := middleware.NewJWTAuth(jwtManager, nil)

	return NewRouter([]string{"*"}, handler, relay, jwtAuth, nil)
}

func doJSON(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	router := newTestRouter(t, "http://localhost:5005/webhooks/rest/webhook")

	t.Run("valid signup", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/signup",
			gin.H{"email": "citizen@example.com", "password": "password123"}, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message": "User created successfully"}`, w.Body.String())
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/signup",
			gin.H{"email": "citizen@example.com", "password": "password123"}, nil)

		require.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error": "User already exists"}`, w.Body.String())
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/signup",
			gin.H{"email": "not-an-email", "password": "password123"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/signup",
			gin.H{"email": "other@example.com", "password": "short"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/signup", gin.H{"email": "x@example.com"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t, "http://localhost:5005/webhooks/rest/webhook")
	w := doJSON(router, http.MethodPost, "/signup",
		gin.H{"email": "citizen@example.com", "password": "password123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials return token", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/login",
			gin.H{"email": "citizen@example.com", "password": "password123"}, nil)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Message string `json:"message"`
			Token   string `json:"token"`
			Email   string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Login successful", body.Message)
		assert.Equal(t, "citizen@example.com", body.Email)
		assert.NotEmpty(t, body.Token)
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/login",
			gin.H{"email": "citizen@example.com", "password": "wrongpassword"}, nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "Invalid credentials"}`, w.Body.String())
	})

	t.Run("unknown email unauthorized with same error", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/login",
			gin.H{"email": "nobody@example.com", "password": "password123"}, nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "Invalid credentials"}`, w.Body.String())
	})
}

func loginToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/signup",
		gin.H{"email": "citizen@example.com", "password": "password123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/login",
		gin.H{"email": "citizen@example.com", "password": "password123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Token
}

func TestProtected(t *testing.T) {
	router := newTestRouter(t, "http://localhost:5005/webhooks/rest/webhook")
	token := loginToken(t, router)

	t.Run("valid token granted", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/protected", nil,
			map[string]string{"Authorization": "Bearer " + token})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "Access granted", "email": "citizen@example.com"}`, w.Body.String())
	})

	t.Run("missing token unauthorized", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/protected", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token unauthorized", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/protected", nil,
			map[string]string{"Authorization": "Bearer not.a.token"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRasaRelay(t *testing.T) {
	t.Run("forwards sender email and relays response", func(t *testing.T) {
		var received map[string]string
		rasa := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"recipient_id": "citizen@example.com", "text": "Hello!"}]`))
		}))
		defer rasa.Close()

		router := newTestRouter(t, rasa.URL)
		token := loginToken(t, router)

		w := doJSON(router, http.MethodPost, "/rasa-webhook",
			gin.H{"message": "I want to file a complaint"},
			map[string]string{"Authorization": "Bearer " + token})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "citizen@example.com", received["sender"])
		assert.Equal(t, "I want to file a complaint", received["message"])
		assert.JSONEq(t, `[{"recipient_id": "citizen@example.com", "text": "Hello!"}]`, w.Body.String())
	})

	t.Run("requires authentication", func(t *testing.T) {
		router := newTestRouter(t, "http://localhost:5005/webhooks/rest/webhook")
		w := doJSON(router, http.MethodPost, "/rasa-webhook", gin.H{"message": "hi"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unreachable engine is bad gateway", func(t *testing.T) {
		router := newTestRouter(t, "http://127.0.0.1:1/webhooks/rest/webhook")
		token := loginToken(t, router)

		w := doJSON(router, http.MethodPost, "/rasa-webhook",
			gin.H{"message": "hi"},
			map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("missing message rejected", func(t *testing.T) {
		router := newTestRouter(t, "http://localhost:5005/webhooks/rest/webhook")
		token := loginToken(t, router)

		w := doJSON(router, http.MethodPost, "/rasa-webhook", gin.H{},
			map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
