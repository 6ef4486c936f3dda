// Package job provides HTTP handlers for job posting operations.
package job

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/utilities"
)

// JobController handles job posting related endpoints
type JobController struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct, log *zap.Logger) *JobController {
	return &JobController{DB: db, Log: log}
}

// GetJobs fetches every job posting.
// @Summary List job postings
// @Tags Job
// @Produce json
// @Success 200 {array} model.Job
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {
	jobs := []model.Job{}
	if err := jc.DB.Order("created_at DESC").Find(&jobs).Error; err != nil {
		jc.Log.Error("failed to fetch jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch jobs"})
		return
	}

	// Jobs stored before skills existed carry NULL arrays, keep the wire shape stable.
	for i := range jobs {
		if jobs[i].Skills == nil {
			jobs[i].Skills = pq.StringArray{}
		}
	}

	c.JSON(http.StatusOK, jobs)
}

type createJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary"`
	JobType     string   `json:"jobType"`
	Skills      []string `json:"skills"`
	CreatedBy   string   `json:"createdBy"`
}

// CreateJobHandler creates a job posting from the request body.
// @Summary Create job posting
// @Tags Job
// @Accept json
// @Produce json
// @Param job body createJobRequest true "Job information"
// @Success 201 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.Title == "" || req.Description == "" || req.Location == "" || req.CreatedBy == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Missing required fields: title, description, location, and createdBy are required",
		})
		return
	}

	createdBy, err := utilities.ParseID(req.CreatedBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid createdBy id"})
		return
	}

	jobType := req.JobType
	if jobType == "" {
		jobType = "full-time"
	}
	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	job := model.Job{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		JobType:     jobType,
		Skills:      pq.StringArray(skills),
		CreatedBy:   createdBy,
	}

	if err := jc.DB.Create(&job).Error; err != nil {
		jc.Log.Error("failed to create job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, job)
}
