package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

// ActivityHandlerTestSuite defines the test suite for ActivityHandler
type ActivityHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ActivityHandler
}

// SetupTest runs before each test
func (suite *ActivityHandlerTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.Application{},
		&models.Activity{},
		&models.Reminder{},
	)
	suite.Require().NoError(err)

	activityRepo := repository.NewActivityRepository(suite.db)
	appRepo := repository.NewApplicationRepository(suite.db)
	suite.handler = NewActivityHandler(services.NewActivityService(activityRepo, appRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ActivityHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ActivityHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Timezone:     "UTC",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *ActivityHandlerTestSuite) createTestApplication(userID string) *models.Application {
	app := &models.Application{
		UserID:       userID,
		Company:      "Acme",
		RoleTitle:    "Engineer",
		Status:       models.StatusApplied,
		Source:       "Other",
		Priority:     models.PriorityNone,
		LocationMode: models.LocationRemote,
	}
	suite.Require().NoError(suite.db.Create(app).Error)
	return app
}

func (suite *ActivityHandlerTestSuite) createTestActivity(userID, appID string, startsAt *time.Time) *models.Activity {
	activity := &models.Activity{
		UserID:        userID,
		ApplicationID: appID,
		Type:          models.ActivityFollowUp,
		Status:        models.ActivityDone,
		StartsAt:      startsAt,
	}
	suite.Require().NoError(suite.db.Create(activity).Error)
	return activity
}

func (suite *ActivityHandlerTestSuite) createAuthContext(method, url string, body []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
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

func (suite *ActivityHandlerTestSuite) TestCreateActivity_Success() {
	user := suite.createTestUser("activity@example.com")
	app := suite.createTestApplication(user.ID)

	startsAt := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	body, _ := json.Marshal(map[string]any{
		"type":             "Interview",
		"status":           "scheduled",
		"starts_at":        startsAt.Format(time.RFC3339),
		"interview_stage":  "technical",
		"interview_medium": "zoom",
		"duration_minutes": 60,
	})

	c, w := suite.createAuthContext("POST", "/api/applications/"+app.ID+"/activities", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: app.ID}}
	suite.handler.CreateActivity(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Equal(suite.T(), `W/"1"`, w.Header().Get(constants.HeaderETag))

	var response dto.ActivityDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.ActivityInterview, response.Type)
	assert.Equal(suite.T(), models.ActivityScheduled, response.Status)
	assert.Equal(suite.T(), app.ID, response.ApplicationID)
	suite.Require().NotNil(response.DurationMins)
	assert.Equal(suite.T(), 60, *response.DurationMins)
}

func (suite *ActivityHandlerTestSuite) TestCreateActivity_ScheduledRequiresStartsAt() {
	user := suite.createTestUser("invariant@example.com")
	app := suite.createTestApplication(user.ID)

	body, _ := json.Marshal(map[string]any{
		"type":   "Interview",
		"status": "scheduled",
	})

	c, w := suite.createAuthContext("POST", "/api/applications/"+app.ID+"/activities", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: app.ID}}
	suite.handler.CreateActivity(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ActivityHandlerTestSuite) TestCreateActivity_ForeignApplication() {
	owner := suite.createTestUser("owner2@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	app := suite.createTestApplication(owner.ID)

	body, _ := json.Marshal(map[string]any{"type": "Email", "status": "done"})
	c, w := suite.createAuthContext("POST", "/api/applications/"+app.ID+"/activities", body, intruder.ID)
	c.Params = gin.Params{{Key: "id", Value: app.ID}}
	suite.handler.CreateActivity(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ActivityHandlerTestSuite) TestListActivities_OrderedByStartTimeNullsLast() {
	user := suite.createTestUser("list@example.com")
	app := suite.createTestApplication(user.ID)

	later := time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	suite.createTestActivity(user.ID, app.ID, &later)
	suite.createTestActivity(user.ID, app.ID, &earlier)
	suite.createTestActivity(user.ID, app.ID, nil)

	c, w := suite.createAuthContext("GET", "/api/applications/"+app.ID+"/activities", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: app.ID}}
	suite.handler.ListActivities(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.ActivityListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Items, 3)
	suite.Require().NotNil(response.Items[0].StartsAt)
	assert.True(suite.T(), response.Items[0].StartsAt.Equal(earlier))
	suite.Require().NotNil(response.Items[1].StartsAt)
	assert.True(suite.T(), response.Items[1].StartsAt.Equal(later))
	assert.Nil(suite.T(), response.Items[2].StartsAt)
}

func (suite *ActivityHandlerTestSuite) TestPatchActivity_ScheduledNeedsExistingStartTime() {
	user := suite.createTestUser("patch@example.com")
	app := suite.createTestApplication(user.ID)
	activity := suite.createTestActivity(user.ID, app.ID, nil)

	body, _ := json.Marshal(map[string]any{"status": "scheduled"})
	c, w := suite.createAuthContext("PATCH", "/api/activities/"+activity.ID, body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: activity.ID}}
	c.Request.Header.Set(constants.HeaderIfMatch, `W/"1"`)
	suite.handler.PatchActivity(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Supplying the start time in the same patch satisfies the invariant.
	body, _ = json.Marshal(map[string]any{
		"status":    "scheduled",
		"starts_at": "2026-06-03T09:00:00Z",
	})
	c, w = suite.createAuthContext("PATCH", "/api/activities/"+activity.ID, body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: activity.ID}}
	c.Request.Header.Set(constants.HeaderIfMatch, `W/"1"`)
	suite.handler.PatchActivity(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), `W/"2"`, w.Header().Get(constants.HeaderETag))
}

func (suite *ActivityHandlerTestSuite) TestPatchActivity_CannotClearStartTimeWhileScheduled() {
	user := suite.createTestUser("clearstart@example.com")
	app := suite.createTestApplication(user.ID)

	startsAt := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	activity := &models.Activity{
		UserID:        user.ID,
		ApplicationID: app.ID,
		Type:          models.ActivityInterview,
		Status:        models.ActivityScheduled,
		StartsAt:      &startsAt,
	}
	suite.Require().NoError(suite.db.Create(activity).Error)

	// Clearing the start time alone would leave a scheduled activity
	// without one.
	body := []byte(`{"starts_at": null}`)
	c, w := suite.createAuthContext("PATCH", "/api/activities/"+activity.ID, body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: activity.ID}}
	c.Request.Header.Set(constants.HeaderIfMatch, `W/"1"`)
	suite.handler.PatchActivity(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var stored models.Activity
	suite.Require().NoError(suite.db.First(&stored, "id = ?", activity.ID).Error)
	suite.Require().NotNil(stored.StartsAt)
	assert.Equal(suite.T(), int64(1), stored.Version)

	// Clearing it together with a move out of scheduled is fine.
	body = []byte(`{"starts_at": null, "status": "canceled"}`)
	c, w = suite.createAuthContext("PATCH", "/api/activities/"+activity.ID, body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: activity.ID}}
	c.Request.Header.Set(constants.HeaderIfMatch, `W/"1"`)
	suite.handler.PatchActivity(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var after models.Activity
	suite.Require().NoError(suite.db.First(&after, "id = ?", activity.ID).Error)
	assert.Nil(suite.T(), after.StartsAt)
	assert.Equal(suite.T(), models.ActivityCanceled, after.Status)
}

func (suite *ActivityHandlerTestSuite) TestCreateActivity_UnknownVariantEnums() {
	user := suite.createTestUser("variant@example.com")
	app := suite.createTestApplication(user.ID)

	post := func(payload map[string]any) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		c, w := suite.createAuthContext("POST", "/api/applications/"+app.ID+"/activities", body, user.ID)
		c.Params = gin.Params{{Key: "id", Value: app.ID}}
		suite.handler.CreateActivity(c)
		return w
	}

	w := post(map[string]any{
		"type":            "Interview",
		"status":          "done",
		"interview_stage": "definitely_not_a_stage",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = post(map[string]any{
		"type":             "Interview",
		"status":           "done",
		"interview_medium": "telegraph",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = post(map[string]any{
		"type":             "FollowUp",
		"status":           "done",
		"followup_channel": "carrier_pigeon",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Activity{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *ActivityHandlerTestSuite) TestPatchActivity_UnknownVariantEnums() {
	user := suite.createTestUser("variantpatch@example.com")
	app := suite.createTestApplication(user.ID)
	activity := suite.createTestActivity(user.ID, app.ID, nil)

	body, _ := json.Marshal(map[string]any{"followup_channel": "carrier_pigeon"})
	c, w := suite.createAuthContext("PATCH", "/api/activities/"+activity.ID, body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: activity.ID}}
	c.Request.Header.Set(constants.HeaderIfMatch, `W/"1"`)
	suite.handler.PatchActivity(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Known values and explicit null both pass.
	body, _ = json.Marshal(map[string]any{"followup_channel": "linkedin"})
	c, w = suite.createAuthContext("PATCH", "/api/activities/"+activity.ID, body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: activity.ID}}
	c.Request.Header.Set(constants.HeaderIfMatch, `W/"1"`)
	suite.handler.PatchActivity(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body = []byte(`{"followup_channel": null}`)
	c, w = suite.createAuthContext("PATCH", "/api/activities/"+activity.ID, body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: activity.ID}}
	c.Request.Header.Set(constants.HeaderIfMatch, `W/"2"`)
	suite.handler.PatchActivity(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *ActivityHandlerTestSuite) TestDeleteActivity_DetachesSharedReminders() {
	user := suite.createTestUser("detach@example.com")
	app := suite.createTestApplication(user.ID)
	activity := suite.createTestActivity(user.ID, app.ID, nil)

	dueAt := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	activityOnly := &models.Reminder{
		UserID:     user.ID,
		ActivityID: &activity.ID,
		Title:      "Prep",
		DueAt:      dueAt,
	}
	suite.Require().NoError(suite.db.Create(activityOnly).Error)

	shared := &models.Reminder{
		UserID:        user.ID,
		ApplicationID: &app.ID,
		ActivityID:    &activity.ID,
		Title:         "Follow up",
		DueAt:         dueAt,
	}
	suite.Require().NoError(suite.db.Create(shared).Error)

	c, w := suite.createAuthContext("DELETE", "/api/activities/"+activity.ID, nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: activity.ID}}
	c.Request.Header.Set(constants.HeaderIfMatch, `W/"1"`)
	suite.handler.DeleteActivity(c)
	c.Writer.WriteHeaderNow()

	suite.Require().Equal(http.StatusNoContent, w.Code)

	// The activity-only reminder is gone; the shared one survives with its
	// activity reference cleared.
	var count int64
	suite.db.Model(&models.Reminder{}).Where("id = ?", activityOnly.ID).Count(&count)
	assert.Zero(suite.T(), count)

	var stored models.Reminder
	suite.Require().NoError(suite.db.First(&stored, "id = ?", shared.ID).Error)
	assert.Nil(suite.T(), stored.ActivityID)
	suite.Require().NotNil(stored.ApplicationID)
	assert.Equal(suite.T(), app.ID, *stored.ApplicationID)
}

func TestActivityHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityHandlerTestSuite))
}
