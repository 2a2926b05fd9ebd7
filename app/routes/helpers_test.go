package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/logging"
	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// envelope mirrors controllers.Response with raw data for decoding.
type envelope struct {
	Success    bool                    `json:"success"`
	Data       json.RawMessage         `json:"data"`
	Message    string                  `json:"message"`
	Count      *int                    `json:"count"`
	Token      string                  `json:"token"`
	User       *models.User            `json:"user"`
	Pagination *controllers.Pagination `json:"pagination"`
}

func testConfig() *config.Config {
	return &config.Config{
		InMemory:        true,
		JWTSecret:       strings.Repeat("s", config.MinJWTSecretLength),
		JWTExpire:       time.Hour,
		BcryptCost:      bcrypt.MinCost,
		AdminEmails:     []string{"admin@example.com"},
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

func setupTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	store, err := repositories.Open(repositories.StoreOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := logging.Discard()
	return SetupRoutes(NewServices(store, testConfig(), logger), logger)
}

func do(t *testing.T, router http.Handler, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func register(t *testing.T, router http.Handler, name, email string) (string, *models.User) {
	t.Helper()
	status, env := do(t, router, "POST", "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	require.NotEmpty(t, env.Token)
	return env.Token, env.User
}

func createCategory(t *testing.T, router http.Handler, token, name string) *models.Category {
	t.Helper()
	status, env := do(t, router, "POST", "/api/categories", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var category models.Category
	decodeData(t, env, &category)
	return &category
}

func createPost(t *testing.T, router http.Handler, token, title, categoryID string) *models.Post {
	t.Helper()
	status, env := do(t, router, "POST", "/api/posts", token, map[string]string{
		"title": title, "content": "Content of " + title, "category": categoryID,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var post models.Post
	decodeData(t, env, &post)
	return &post
}
