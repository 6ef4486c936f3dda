package auth

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func newRouter() *gin.Engine {
	r := gin.Default()
	ac := NewAuthController(testDB, zap.NewNop())
	r.POST("/auth/login", ac.LoginHandler)
	return r
}

func TestLoginHandler_CreatesUser(t *testing.T) {
	r := newRouter()

	body := gin.H{
		"username": "fresh_candidate",
		"role":     model.RoleCandidate,
	}

	rec, resp := testutil.MakeJSONRequest(body, r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "fresh_candidate", resp["username"])
	assert.Equal(t, model.RoleCandidate, resp["role"])
	assert.Equal(t, model.KYCStatusPending, resp["kycStatus"])
}

func TestLoginHandler_ReturnsExistingUser(t *testing.T) {
	r := newRouter()

	body := gin.H{
		"username": database.TestCandidate1.Username,
		"role":     model.RoleCandidate,
	}

	rec, resp := testutil.MakeJSONRequest(body, r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestCandidate1.ID.String(), resp["id"])

	// same username again still resolves to the same account
	rec2, resp2 := testutil.MakeJSONRequest(body, r, "/auth/login", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, resp["id"], resp2["id"])
}

func TestLoginHandler_UpdatesWalletAddress(t *testing.T) {
	r := newRouter()

	wallet := "UQDemoWalletAddressForLoginTest0000000000000000"
	body := gin.H{
		"username":      database.TestCandidate2.Username,
		"role":          model.RoleCandidate,
		"walletAddress": wallet,
	}

	rec, resp := testutil.MakeJSONRequest(body, r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wallet, resp["walletAddress"])

	var stored model.User
	assert.NoError(t, testDB.Where("id = ?", database.TestCandidate2.ID).First(&stored).Error)
	if assert.NotNil(t, stored.WalletAddress) {
		assert.Equal(t, wallet, *stored.WalletAddress)
	}
}

func TestLoginHandler_MissingRole(t *testing.T) {
	r := newRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"username": "no_role"}, r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username and role are required", resp["error"])
}

func TestLoginHandler_UnknownRole(t *testing.T) {
	r := newRouter()

	body := gin.H{"username": "weird_role", "role": "admin"}
	rec, _ := testutil.MakeJSONRequest(body, r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
