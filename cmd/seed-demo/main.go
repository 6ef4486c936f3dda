// Command-line tool to seed demo users and job postings into the database.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/lib/pq"
)

func main() {

	fmt.Println("This will insert demo companies, candidates and job postings.")
	fmt.Print("Continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	if strings.TrimSpace(strings.ToLower(input)) != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	companies := []model.User{
		{Name: "Orbital Labs", Username: "orbital_labs", Role: model.RoleCompany, KYCStatus: model.KYCStatusVerified},
		{Name: "Nimbus Pay", Username: "nimbus_pay", Role: model.RoleCompany},
	}
	candidates := []model.User{
		{Name: "Dana Smith", Username: "dana_smith", Role: model.RoleCandidate, KYCStatus: model.KYCStatusVerified},
		{Name: "Lee Chen", Username: "lee_chen", Role: model.RoleCandidate},
	}

	for i := range companies {
		if err := firstOrCreateUser(db, &companies[i]); err != nil {
			log.Fatalf("Failed to seed company %q: %v", companies[i].Username, err)
		}
	}
	for i := range candidates {
		if err := firstOrCreateUser(db, &candidates[i]); err != nil {
			log.Fatalf("Failed to seed candidate %q: %v", candidates[i].Username, err)
		}
	}

	jobs := []model.Job{
		{
			Title:       "Senior Go Engineer",
			Description: "Build and operate payment services.",
			Company:     companies[0].Name,
			Location:    "Remote",
			Salary:      "120",
			JobType:     "full-time",
			Skills:      pq.StringArray{"go", "postgres", "redis"},
			CreatedBy:   companies[0].ID,
		},
		{
			Title:       "Smart Contract Auditor",
			Description: "Review escrow contracts before release.",
			Company:     companies[1].Name,
			Location:    "Berlin",
			Salary:      "90",
			JobType:     "contract",
			Skills:      pq.StringArray{"solidity", "security"},
			CreatedBy:   companies[1].ID,
		},
	}

	for i := range jobs {
		var existing model.Job
		err := db.Where("title = ? AND created_by = ?", jobs[i].Title, jobs[i].CreatedBy).First(&existing).Error
		if err == nil {
			continue
		}
		if err := db.Create(&jobs[i]).Error; err != nil {
			log.Fatalf("Failed to seed job %q: %v", jobs[i].Title, err)
		}
	}

	fmt.Println("Demo data seeded.")
}

func firstOrCreateUser(db *database.DBinstanceStruct, user *model.User) error {
	var existing model.User
	if err := db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
		*user = existing
		return nil
	}
	return db.Create(user).Error
}
