package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/constants"
	"github.com/karashiro/jobtrack-api/internal/dto"
	"github.com/karashiro/jobtrack-api/internal/models"
	"github.com/karashiro/jobtrack-api/internal/repository"
	"github.com/karashiro/jobtrack-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SettingsHandlerTestSuite defines the test suite for SettingsHandler
type SettingsHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *SettingsHandler
}

// SetupTest runs before each test
func (suite *SettingsHandlerTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
	)
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	suite.handler = NewSettingsHandler(
		services.NewSettingsService(userRepo),
		services.NewAuthService(userRepo),
	)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *SettingsHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SettingsHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Timezone:     "UTC",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *SettingsHandlerTestSuite) createAuthContext(method, url string, body []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *SettingsHandlerTestSuite) TestGetSettings_DefaultsWhenUnset() {
	user := suite.createTestUser("settings@example.com")

	c, w := suite.createAuthContext("GET", "/api/settings", nil, user.ID)
	suite.handler.GetSettings(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.SettingsDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(suite.T(), response.QuietHoursStart)
	assert.Nil(suite.T(), response.QuietHoursEnd)
	assert.Equal(suite.T(), "UTC", response.Timezone)
	assert.Empty(suite.T(), response.ReminderDefaults)
}

func (suite *SettingsHandlerTestSuite) TestPutSettings_RoundTrip() {
	user := suite.createTestUser("put@example.com")

	body, _ := json.Marshal(map[string]any{
		"quiet_hours_start": "22:00",
		"quiet_hours_end":   "06:00",
		"timezone":          "Asia/Tokyo",
		"reminder_defaults": map[string]any{"channels": []string{"email"}},
	})

	c, w := suite.createAuthContext("PUT", "/api/settings", body, user.ID)
	suite.handler.PutSettings(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.SettingsDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotNil(response.QuietHoursStart)
	assert.Equal(suite.T(), "22:00", *response.QuietHoursStart)
	suite.Require().NotNil(response.QuietHoursEnd)
	assert.Equal(suite.T(), "06:00", *response.QuietHoursEnd)
	assert.Equal(suite.T(), "Asia/Tokyo", response.Timezone)

	// The timezone update lands on the account row.
	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(suite.T(), "Asia/Tokyo", stored.Timezone)

	// A follow-up read returns what was stored.
	c, w = suite.createAuthContext("GET", "/api/settings", nil, user.ID)
	suite.handler.GetSettings(c)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotNil(response.QuietHoursStart)
	assert.Equal(suite.T(), "22:00", *response.QuietHoursStart)
}

func (suite *SettingsHandlerTestSuite) TestPutSettings_QuietHoursValidation() {
	user := suite.createTestUser("validate@example.com")

	put := func(payload map[string]any) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		c, w := suite.createAuthContext("PUT", "/api/settings", body, user.ID)
		suite.handler.PutSettings(c)
		return w
	}

	// Start without end.
	w := put(map[string]any{"quiet_hours_start": "22:00"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Bad clock format.
	w = put(map[string]any{"quiet_hours_start": "25:00", "quiet_hours_end": "06:00"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Clearing both is allowed.
	w = put(map[string]any{})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func TestSettingsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsHandlerTestSuite))
}
