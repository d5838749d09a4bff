package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/constants"
	"github.com/karashiro/jobtrack-api/internal/dto"
	"github.com/karashiro/jobtrack-api/internal/middleware"
	"github.com/karashiro/jobtrack-api/internal/models"
	"github.com/karashiro/jobtrack-api/internal/repository"
	"github.com/karashiro/jobtrack-api/internal/services"
	"github.com/karashiro/jobtrack-api/internal/token"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	jwt         *token.JWT
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	jwt := token.NewJWT("test-secret", time.Hour)
	handler := NewAuthHandler(authService, jwt)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)
	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		jwt:         jwt,
	}
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", env.handler.Signup)
	r.POST("/api/auth/login", env.handler.Login)
	r.POST("/api/auth/logout", env.handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(env.jwt), env.handler.GetCurrentUser)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	payload := map[string]string{
		"email":        "newuser@example.com",
		"password":     "supersecret",
		"display_name": "New User",
		"timezone":     "Europe/Berlin",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser@example.com", response.Email)
	require.NotNil(t, response.DisplayName)
	require.Equal(t, "New User", *response.DisplayName)
	require.Equal(t, "Europe/Berlin", response.Timezone)
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	post := func(payload map[string]string) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(map[string]string{"email": "not-an-email", "password": "supersecret"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = post(map[string]string{"email": "short@example.com", "password": "short"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = post(map[string]string{"email": "dup@example.com", "password": "supersecret"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = post(map[string]string{"email": "dup@example.com", "password": "supersecret"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_SessionAndToken(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Result().Cookies())

	var response struct {
		User        dto.UserDTO `json:"user"`
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing@example.com", response.User.Email)
	require.Equal(t, "bearer", response.TokenType)
	require.NotEmpty(t, response.AccessToken)

	// The issued token authenticates bearer requests.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+response.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var me dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "existing@example.com", me.Email)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "victim@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{
		"email":    "victim@example.com",
		"password": "wrong-password",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
