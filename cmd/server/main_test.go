package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"workout-tracker/internal/auth"
	"workout-tracker/internal/config"
	"workout-tracker/internal/handlers"
	"workout-tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	// Setup dependencies
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	// Use relative paths for tests running in cmd/server
	h := handlers.NewHandlers(db, "../../web/templates", false)

	if _, err := os.Stat("../../web/templates"); os.IsNotExist(err) {
		t.Skip("Template directory not found, skipping router test")
	}

	mux := setupRouter(h, "../../web/static")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		allowAlt   []int // Alternative acceptable status codes
	}{
		{
			name:       "Root redirects to /dashboard",
			method:     "GET",
			path:       "/",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Static file access",
			method:     "GET",
			path:       "/static/style.css",
			wantStatus: http.StatusOK,
			allowAlt:   []int{http.StatusNotFound}, // File might not exist in test env
		},
		{
			name:       "Login page is public",
			method:     "GET",
			path:       "/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Dashboard requires auth",
			method:     "GET",
			path:       "/dashboard",
			wantStatus: http.StatusFound, // Should redirect to login
		},
		{
			name:       "Delete requires auth",
			method:     "POST",
			path:       "/workout/delete/1",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Delete only accepts POST",
			method:     "GET",
			path:       "/workout/delete/1",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "Metrics endpoint",
			method:     "GET",
			path:       "/metrics",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// Check if status matches expected or any alternative
			if len(tt.allowAlt) > 0 {
				acceptableStatuses := append([]int{tt.wantStatus}, tt.allowAlt...)
				assert.Contains(t, acceptableStatuses, w.Code,
					"%s %s returned unexpected status", tt.method, tt.path)
			} else {
				assert.Equal(t, tt.wantStatus, w.Code,
					"%s %s returned unexpected status", tt.method, tt.path)
			}
		})
	}
}

func TestEnsureAdminUser(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, ensureAdminUser(db, "", ""), "no admin configured is fine")

	err = ensureAdminUser(db, "coach", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")

	require.NoError(t, ensureAdminUser(db, "coach", "testpass123"))
	user, err := db.GetUserByUsername("coach")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword("testpass123", user.PasswordHash))

	// Second call leaves the existing user alone
	require.NoError(t, ensureAdminUser(db, "coach", "other"))
	count, err := db.UserCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd(config.Config{Port: 8080, DBPath: ":memory:", SessionCleanupSchedule: "@hourly"})
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "workout-tracker dev")
}

func TestRunRejectsBadSchedule(t *testing.T) {
	cfg := config.Config{
		Port:                   0,
		DBPath:                 ":memory:",
		LogLevel:               "error",
		LogFile:                t.TempDir() + "/test.log",
		SessionCleanupSchedule: "not a schedule",
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	err := run(ctx, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid session cleanup schedule")
}
