package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/Rajatgupta94114/JOB-EZZY/internal/model"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded users and jobs for controller tests.
var (
	TestCompany1   m.User
	TestCompany2   m.User
	TestCandidate1 m.User
	TestCandidate2 m.User

	TestJob1 m.Job
	TestJob2 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample company and candidate users plus two jobs if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	userSpecs := []struct {
		username string
		name     string
		role     string
	}{
		{"acme_corp", "Acme Corp", m.RoleCompany},
		{"globex_inc", "Globex Inc", m.RoleCompany},
		{"alice_dev", "Alice Dev", m.RoleCandidate},
		{"bob_eng", "Bob Eng", m.RoleCandidate},
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			ID:        uuid.New(),
			Username:  s.username,
			Name:      s.name,
			Role:      s.role,
			KYCStatus: m.KYCStatusPending,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	TestCompany1 = users[0]
	TestCompany2 = users[1]
	TestCandidate1 = users[2]
	TestCandidate2 = users[3]

	jobs := []m.Job{
		{
			ID:          uuid.New(),
			Title:       "Backend Engineer",
			Description: "Build and operate the marketplace backend",
			Company:     TestCompany1.Name,
			Location:    "Remote",
			Salary:      "100",
			JobType:     "full-time",
			Skills:      pq.StringArray{"go", "postgres"},
			CreatedBy:   TestCompany1.ID,
		},
		{
			ID:          uuid.New(),
			Title:       "Smart Contract Auditor",
			Description: "Review escrow contracts",
			Company:     TestCompany2.Name,
			Location:    "Berlin",
			Salary:      "200",
			JobType:     "contract",
			Skills:      pq.StringArray{"ton", "solidity"},
			CreatedBy:   TestCompany2.ID,
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}

	TestJob1 = jobs[0]
	TestJob2 = jobs[1]

	return nil
}

// loadTestData reloads the exported fixtures from an already seeded database.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.Where("username = ?", "acme_corp").First(&TestCompany1).Error; err != nil {
		return err
	}
	if err := db.Where("username = ?", "globex_inc").First(&TestCompany2).Error; err != nil {
		return err
	}
	if err := db.Where("username = ?", "alice_dev").First(&TestCandidate1).Error; err != nil {
		return err
	}
	if err := db.Where("username = ?", "bob_eng").First(&TestCandidate2).Error; err != nil {
		return err
	}
	if err := db.Where("title = ?", "Backend Engineer").First(&TestJob1).Error; err != nil {
		return err
	}
	return db.Where("title = ?", "Smart Contract Auditor").First(&TestJob2).Error
}
