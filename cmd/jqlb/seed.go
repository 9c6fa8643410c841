package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Issue is a sample issue row. Column names follow the snake_case naming of
// the clause names used by the query documents.
type Issue struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Key        string    `gorm:"column:key;uniqueIndex"`
	Project    string    `gorm:"column:project;index"`
	IssueType  string    `gorm:"column:issuetype"`
	Status     string    `gorm:"column:status"`
	Priority   string    `gorm:"column:priority"`
	Resolution *string   `gorm:"column:resolution"`
	Assignee   *string   `gorm:"column:assignee"`
	Reporter   string    `gorm:"column:reporter"`
	Summary    string    `gorm:"column:summary"`
	Labels     *string   `gorm:"column:labels"`
	Votes      int       `gorm:"column:votes"`
	Created    time.Time `gorm:"column:created"`
	Updated    time.Time `gorm:"column:updated"`
}

func (Issue) TableName() string { return "issues" }

func openDB(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func newSeedCmd() *cobra.Command {
	var (
		dbPath string
		count  int
		seed   int64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a sqlite database with sample issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(dbPath)
			if err != nil {
				return errors.Wrapf(err, "open %s", dbPath)
			}
			if err := db.AutoMigrate(&Issue{}); err != nil {
				return errors.Wrap(err, "migrate")
			}
			issues := generateIssues(count, rand.New(rand.NewSource(seed)))
			if err := db.CreateInBatches(issues, 100).Error; err != nil {
				return errors.Wrap(err, "insert issues")
			}
			cliLogger.Info("seeded issues", slog.String("db", dbPath), slog.Int("count", len(issues)))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "issues.db", "sqlite database file")
	cmd.Flags().IntVar(&count, "count", 200, "number of issues")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	return cmd
}

func generateIssues(count int, r *rand.Rand) []Issue {
	projects := []string{"HSP", "MKY", "TST", "OPS"}
	types := []string{"Bug", "Task", "Story", "Epic", "Sub-task"}
	statuses := []string{"Open", "In Progress", "Resolved", "Closed", "Reopened"}
	priorities := []string{"Blocker", "Critical", "Major", "Minor", "Trivial"}
	resolutions := []string{"Fixed", "Won't Fix", "Duplicate", "Cannot Reproduce"}
	users := []string{"admin", "fred", "wilma", "barney", "betty"}
	labels := []string{"backend", "frontend", "security", "performance"}
	words := []string{"login", "crash", "report", "export", "search", "timeout", "upgrade", "dashboard"}

	counters := make(map[string]int, len(projects))
	issues := make([]Issue, count)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		project := projects[r.Intn(len(projects))]
		counters[project]++
		status := statuses[r.Intn(len(statuses))]
		created := base.Add(time.Duration(r.Intn(365*24)) * time.Hour)

		issue := Issue{
			ID:        int64(i + 1),
			Key:       fmt.Sprintf("%s-%d", project, counters[project]),
			Project:   project,
			IssueType: types[r.Intn(len(types))],
			Status:    status,
			Priority:  priorities[r.Intn(len(priorities))],
			Reporter:  users[r.Intn(len(users))],
			Summary:   fmt.Sprintf("%s %s issue", words[r.Intn(len(words))], words[r.Intn(len(words))]),
			Votes:     r.Intn(20),
			Created:   created,
			Updated:   created.Add(time.Duration(r.Intn(30*24)) * time.Hour),
		}
		if status == "Resolved" || status == "Closed" {
			res := resolutions[r.Intn(len(resolutions))]
			issue.Resolution = &res
		}
		if r.Float32() < 0.8 {
			assignee := users[r.Intn(len(users))]
			issue.Assignee = &assignee
		}
		if r.Float32() < 0.5 {
			label := labels[r.Intn(len(labels))]
			issue.Labels = &label
		}
		issues[i] = issue
	}
	return issues
}
