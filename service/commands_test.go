package service

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inkwell/app/config"
	"inkwell/app/logging"
	"inkwell/app/repositories"
	"inkwell/app/routes"
	"inkwell/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	return &config.Config{
		DBPath:          filepath.Join(tmpDir, "badger"),
		BackupDir:       filepath.Join(tmpDir, "backups"),
		ServerHost:      "127.0.0.1",
		ServerPort:      5000,
		LogLevel:        "error",
		LogFormat:       "text",
		JWTSecret:       strings.Repeat("s", config.MinJWTSecretLength),
		JWTExpire:       time.Hour,
		BcryptCost:      bcrypt.MinCost,
		DefaultPageSize: 2,
		MaxPageSize:     10,
	}
}

// runCLI runs args with input as stdin and returns the exit code and output.
func runCLI(cfg *config.Config, input string, args ...string) (int, string) {
	var out bytes.Buffer
	cli := NewCLI(cfg, strings.NewReader(input), &out)
	cli.logger = logging.Discard()
	code := cli.Run(args)
	return code, out.String()
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{},
			expectedExit:   1,
			expectedOutput: "Usage: inkwell <command>",
		},
		{
			name:           "help command",
			args:           []string{"help"},
			expectedExit:   0,
			expectedOutput: "Usage: inkwell <command> [options]\n\nCommands:",
		},
		{
			name:           "unknown command",
			args:           []string{"bogus"},
			expectedExit:   1,
			expectedOutput: "Unknown command: bogus",
		},
		{
			name:           "restore without file",
			args:           []string{"restore"},
			expectedExit:   1,
			expectedOutput: "Error: backup file path required for restore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, output := runCLI(testConfig(t), "", tt.args...)
			assert.Equal(t, tt.expectedExit, code)
			assert.Contains(t, output, tt.expectedOutput)
		})
	}
}

func TestServeRejectsMissingSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = ""
	code, output := runCLI(cfg, "", "serve")
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "Invalid configuration")
}

func TestInitAndClean(t *testing.T) {
	cfg := testConfig(t)

	code, output := runCLI(cfg, "", "clean")
	assert.Equal(t, 0, code)
	assert.Contains(t, output, "Database is already clean")

	code, output = runCLI(cfg, "", "init")
	assert.Equal(t, 0, code)
	assert.Contains(t, output, "Database initialized successfully")
	assert.DirExists(t, cfg.DBPath)

	_, output = runCLI(cfg, "", "init")
	assert.Contains(t, output, "Database already exists")

	code, output = runCLI(cfg, "n\n", "clean")
	assert.Equal(t, 0, code)
	assert.Contains(t, output, "Operation cancelled")
	assert.DirExists(t, cfg.DBPath)

	code, output = runCLI(cfg, "y\n", "clean")
	assert.Equal(t, 0, code)
	assert.Contains(t, output, "Database cleaned successfully")
	assert.NoDirExists(t, cfg.DBPath)
}

func TestBackupWithoutDatabase(t *testing.T) {
	code, output := runCLI(testConfig(t), "", "backup")
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "No database exists to backup")
}

func TestRestoreErrors(t *testing.T) {
	cfg := testConfig(t)

	code, output := runCLI(cfg, "", "restore", filepath.Join(t.TempDir(), "missing.db"))
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "Backup file does not exist")

	empty := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	code, output = runCLI(cfg, "", "restore", empty)
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "Backup file is empty")
}

func TestSeedBackupRestoreRoundTrip(t *testing.T) {
	cfg := testConfig(t)

	code, output := runCLI(cfg, "", "seed")
	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "Created category Technology")
	assert.Contains(t, output, "Database seeded successfully")

	// Seeding again replaces rather than duplicates.
	code, _ = runCLI(cfg, "", "seed")
	require.Equal(t, 0, code)

	code, output = runCLI(cfg, "", "backup")
	require.Equal(t, 0, code, output)
	entries, err := os.ReadDir(cfg.BackupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	backupFile := filepath.Join(cfg.BackupDir, entries[0].Name())
	assert.True(t, strings.HasPrefix(entries[0].Name(), "backup_"))

	code, output = runCLI(cfg, "n\n", "restore", backupFile)
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "Operation cancelled")

	code, output = runCLI(cfg, "y\n", "restore", backupFile)
	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "Database restored successfully")

	store, err := repositories.Open(repositories.StoreOptions{Path: cfg.DBPath})
	require.NoError(t, err)
	defer store.Close()
	categories, err := services.NewCategoryService(store.Categories()).ListCategories()
	require.NoError(t, err)
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	assert.ElementsMatch(t, []string{"Technology", "Lifestyle", "Travel", "Food"}, names)
}

func TestPostsCommand(t *testing.T) {
	cfg := testConfig(t)
	store, err := repositories.Open(repositories.StoreOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := logging.Discard()
	svc := routes.NewServices(store, cfg, logger)
	server := httptest.NewServer(routes.SetupRoutes(svc, logger))
	t.Cleanup(server.Close)
	cfg.APIURL = server.URL + "/api"

	result, err := svc.Auth.Register(services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	caller := services.Identity{UserID: result.User.ID, Role: result.User.Role}
	categories, err := svc.Categories.ReplaceAll([]services.CategoryInput{{Name: ptr("Travel")}, {Name: ptr("Food")}})
	require.NoError(t, err)
	_, err = svc.Posts.CreatePost(services.PostInput{Title: ptr("Lisbon"), Content: ptr("Trams"), Category: &categories[0].ID}, caller)
	require.NoError(t, err)
	_, err = svc.Posts.CreatePost(services.PostInput{Title: ptr("Bread"), Content: ptr("Sourdough"), Category: &categories[1].ID}, caller)
	require.NoError(t, err)

	code, output := runCLI(cfg, "", "posts")
	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "Lisbon")
	assert.Contains(t, output, "Bread")

	code, output = runCLI(cfg, "", "posts", "travel")
	require.Equal(t, 0, code, output)
	assert.Contains(t, output, "Lisbon")
	assert.NotContains(t, output, "Bread")

	code, output = runCLI(cfg, "", "posts", "nothing")
	require.Equal(t, 0, code)
	assert.Contains(t, output, "No posts found")
}

func TestPostsCommandUnreachableAPI(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIURL = "http://127.0.0.1:1/api"
	code, output := runCLI(cfg, "", "posts")
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "Failed to fetch posts")
}

func TestServerGracefulShutdown(t *testing.T) {
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, srv, listener, logging.Discard())
	}()

	resp, err := http.Get("http://" + listener.Addr().String())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func ptr(s string) *string {
	return &s
}
