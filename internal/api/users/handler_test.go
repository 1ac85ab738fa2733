package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sponsio/database"
	"sponsio/internal/domain/subscriptions"
	"sponsio/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &users.VerificationToken{}, &subscriptions.Subscription{}))
	database.DB = db
	return db
}

func perform(handler gin.HandlerFunc, method, target string, body interface{}, userID uint) *httptest.ResponseRecorder {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", userID)
	handler(c)
	return w
}

func TestGetCurrentUserIncludesPublishRights(t *testing.T) {
	db := setupDB(t)
	u := users.User{Email: "a@x.test", AuthProvider: "local", IsVerified: true}
	require.NoError(t, db.Create(&u).Error)

	w := perform(GetCurrentUser, http.MethodGet, "/me", nil, u.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var out MeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "a@x.test", out.Email)
	assert.False(t, out.CanPublish, "unverified businesses cannot publish")
	assert.Nil(t, out.Subscription)
}

func TestGetCurrentUserWithSubscription(t *testing.T) {
	db := setupDB(t)
	u := users.User{Email: "a@x.test", AuthProvider: "local", IsVerified: true, BusinessVerified: true}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, subscriptions.Upsert(db, u.ID, "cus_1", "price_1", "active", time.Now().Add(30*24*time.Hour)))

	w := perform(GetCurrentUser, http.MethodGet, "/me", nil, u.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var out MeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.CanPublish)
	require.NotNil(t, out.Subscription)
	assert.Equal(t, "active", out.Subscription.Status)
}

func TestVerifyBusinessGrantsPublishRights(t *testing.T) {
	db := setupDB(t)
	u := users.User{Email: "a@x.test", AuthProvider: "local", IsVerified: true}
	require.NoError(t, db.Create(&u).Error)

	w := perform(VerifyBusiness, http.MethodPost, "/business/verify",
		gin.H{"business_name": "Ma Newsletter SARL", "siret": "123456789"}, u.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored users.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.True(t, stored.BusinessVerified)
	require.NotNil(t, stored.BusinessName)
	assert.Equal(t, "Ma Newsletter SARL", *stored.BusinessName)
}

func TestVerifyBusinessRejectsShortSiret(t *testing.T) {
	db := setupDB(t)
	u := users.User{Email: "a@x.test", AuthProvider: "local"}
	require.NoError(t, db.Create(&u).Error)

	w := perform(VerifyBusiness, http.MethodPost, "/business/verify",
		gin.H{"business_name": "Ma Newsletter", "siret": "1234"}, u.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored users.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.False(t, stored.BusinessVerified)
}
