package application

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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
	ac := NewApplicationController(testDB, zap.NewNop())
	r.GET("/applications", ac.GetApplications)
	r.POST("/applications", ac.CreateApplicationHandler)
	r.PUT("/applications", ac.UpdateApplicationHandler)
	return r
}

func TestCreateApplicationHandler_Success(t *testing.T) {
	r := newRouter()

	var jobBefore model.Job
	assert.NoError(t, testDB.Where("id = ?", database.TestJob1.ID).First(&jobBefore).Error)

	body := gin.H{
		"jobId":         database.TestJob1.ID,
		"candidateId":   database.TestCandidate1.ID,
		"candidateName": database.TestCandidate1.Name,
		"resume": gin.H{
			"fileName": "resume.pdf",
			"fileData": "JVBERi0xLjQ=",
			"fileType": "application/pdf",
		},
		"details": gin.H{
			"email":       "alice@example.com",
			"coverLetter": "I would love to work on this.",
		},
	}

	rec, resp := testutil.MakeJSONRequest(body, r, "/applications", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, resp["id"])
	// status defaults to pending when the caller does not send one
	assert.Equal(t, model.ApplicationStatusPending, resp["status"])
	assert.Equal(t, database.TestJob1.ID.String(), resp["jobId"])

	// the applicants counter moves with the insert
	var jobAfter model.Job
	assert.NoError(t, testDB.Where("id = ?", database.TestJob1.ID).First(&jobAfter).Error)
	assert.Equal(t, jobBefore.Applicants+1, jobAfter.Applicants)
}

func TestCreateApplicationHandler_MissingFields(t *testing.T) {
	r := newRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"jobId": database.TestJob1.ID}, r, "/applications", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", resp["error"])
}

func TestGetApplications_FilterByCandidate(t *testing.T) {
	r := newRouter()

	application := model.Application{
		JobID:       database.TestJob2.ID,
		CandidateID: database.TestCandidate2.ID,
		Status:      model.ApplicationStatusPending,
	}
	assert.NoError(t, testDB.Create(&application).Error)

	rec, resp := testutil.MakeListRequest(r, fmt.Sprintf("/applications?candidateId=%s", database.TestCandidate2.ID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(resp), 1)
	for _, a := range resp {
		assert.Equal(t, database.TestCandidate2.ID.String(), a["candidateId"])
	}
}

func TestGetApplications_InvalidFilter(t *testing.T) {
	r := newRouter()

	rec, resp := testutil.MakeJSONRequest(nil, r, "/applications?jobId=nope", http.MethodGet)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid jobId", resp["error"])
}

func TestUpdateApplicationHandler_PartialUpdate(t *testing.T) {
	r := newRouter()

	application := model.Application{
		JobID:         database.TestJob1.ID,
		CandidateID:   database.TestCandidate2.ID,
		CandidateName: database.TestCandidate2.Name,
		Status:        model.ApplicationStatusPending,
	}
	assert.NoError(t, testDB.Create(&application).Error)

	body := gin.H{
		"id":     application.ID,
		"status": model.ApplicationStatusRejected,
	}
	rec, resp := testutil.MakeJSONRequest(body, r, "/applications", http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ApplicationStatusRejected, resp["status"])
	// untouched fields survive the partial update
	assert.Equal(t, database.TestCandidate2.Name, resp["candidateName"])
}

func TestUpdateApplicationHandler_NotFound(t *testing.T) {
	r := newRouter()

	body := gin.H{"id": uuid.New(), "status": model.ApplicationStatusAccepted}
	rec, resp := testutil.MakeJSONRequest(body, r, "/applications", http.MethodPut)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Application not found", resp["error"])
}
