package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"codecollab-be/internal/bootstrap"
	"codecollab-be/internal/config"
	"codecollab-be/internal/entity"
	"codecollab-be/internal/model"
	"codecollab-be/internal/repository/unitofwork"
	"codecollab-be/pkg/database"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

const testSecret = "integration-secret"

type testEnv struct {
	srv   *Server
	token string
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(dir, "app.log"),
			RoomLogFilePath:    filepath.Join(dir, "rooms.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			InstanceID:         "test",
			ActivityTopic:      "ROOM_ACTIVITY",
		},
		Auth: config.AuthConfig{
			JwtSecret:        testSecret,
			DisplayNameTTL:   time.Minute,
			AnonymousDisplay: "Anonymous",
		},
		Sandbox: config.SandboxConfig{
			Timeout:    2 * time.Second,
			Workers:    1,
			QueueDepth: 1,
			TempDir:    dir,
			PythonBin:  "python3",
			NodeBin:    "node",
			JavacBin:   "javac",
			CxxBin:     "g++",
		},
		Room: config.RoomConfig{
			SendBuffer:     16,
			DispatchQueue:  16,
			MaxMessageSize: 64 * 1024,
			TimestampTZ:    "UTC",
		},
	}

	db, err := database.Open(sqlite.Open("file:"+filepath.Join(dir, "test.db")), database.PoolConfig{
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	ctx := context.Background()
	user := &entity.User{Id: uuid.New(), Username: "alice", Email: "alice@example.com"}
	require.NoError(t, unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx).UserRepository().Create(ctx, user))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	container := bootstrap.NewContainer(db, cfg)
	t.Cleanup(container.Close)

	return &testEnv{srv: New(cfg, container), token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, auth bool) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.srv.GetApp().Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRoomLifecycle(t *testing.T) {
	env := setup(t)

	status, body := env.do(t, http.MethodPost, "/api/rooms/v1", map[string]string{"language": "java"}, true)
	require.Equal(t, http.StatusCreated, status)
	room := body["data"].(map[string]interface{})
	name := room["name"].(string)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, name)
	assert.Equal(t, "java", room["language"])

	status, body = env.do(t, http.MethodPost, "/api/rooms/v1/join", map[string]string{"room_code": name}, true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, name, body["data"].(map[string]interface{})["name"])

	status, body = env.do(t, http.MethodGet, "/api/rooms/v1/"+name, nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{"python", "java", "cpp"}, body["data"].(map[string]interface{})["languages"])
}

func TestRoomErrors(t *testing.T) {
	env := setup(t)

	status, body := env.do(t, http.MethodPost, "/api/rooms/v1/join", map[string]string{"room_code": "NOPE00"}, true)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Room not found", body["message"])
	assert.Equal(t, false, body["success"])

	status, _ = env.do(t, http.MethodPost, "/api/rooms/v1/join", map[string]string{"room_code": ""}, true)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/api/rooms/v1", map[string]string{"language": "cobol"}, true)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/api/rooms/v1", nil, false)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProfileEndpoints(t *testing.T) {
	env := setup(t)

	status, _ := env.do(t, http.MethodGet, "/api/profile/v1", nil, true)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := env.do(t, http.MethodPut, "/api/profile/v1/interests", map[string]string{"interests": "go websockets"}, true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "go websockets", body["data"].(map[string]interface{})["interests"])

	status, body = env.do(t, http.MethodGet, "/api/profile/v1/recommended-rooms", nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"])
}

func TestHealthz(t *testing.T) {
	env := setup(t)

	status, body := env.do(t, http.MethodGet, "/healthz", nil, false)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["rooms"])
	assert.Equal(t, float64(0), data["sessions"])
}
