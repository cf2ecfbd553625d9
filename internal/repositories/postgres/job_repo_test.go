package postgres

import (
	"strings"
	"testing"

	"github.com/manabi09/job-portal/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds statements without a live connection, so the generated SQL
// can be asserted directly.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=jobportal dbname=jobportal",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func listingSQL(t *testing.T, f models.JobFilter) (string, []any) {
	t.Helper()
	var jobs []models.Job
	stmt := applyJobFilter(dryRunDB(t).Model(&models.Job{}), f).Find(&jobs).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestApplyJobFilterActiveGate(t *testing.T) {
	sql, vars := listingSQL(t, models.JobFilter{})

	if !strings.Contains(sql, "status = ") {
		t.Fatalf("no status predicate in %q", sql)
	}
	if len(vars) != 1 || vars[0] != models.JobActive {
		t.Fatalf("vars = %v, want just the active status", vars)
	}
}

func TestApplyJobFilterSearchAndLocationAreIndependent(t *testing.T) {
	sql, vars := listingSQL(t, models.JobFilter{Search: "go", Location: "berlin"})

	// search ORs over its own columns only
	if !strings.Contains(sql, "(title ILIKE ") || !strings.Contains(sql, "description ILIKE ") {
		t.Fatalf("search group missing in %q", sql)
	}
	// location ORs over its own columns only
	if !strings.Contains(sql, "location->>'city' ILIKE ") || !strings.Contains(sql, "location->>'country' ILIKE ") {
		t.Fatalf("location group missing in %q", sql)
	}
	// both groups AND with the status gate
	if !strings.Contains(sql, "status = ") {
		t.Fatalf("status predicate dropped in %q", sql)
	}
	if got := strings.Count(sql, " AND "); got < 2 {
		t.Fatalf("groups not ANDed (%d AND) in %q", got, sql)
	}

	want := map[any]int{models.JobActive: 1, "%go%": 2, "%berlin%": 2}
	got := map[any]int{}
	for _, v := range vars {
		got[v]++
	}
	for v, n := range want {
		if got[v] != n {
			t.Fatalf("var %v appears %d times, want %d (vars %v)", v, got[v], n, vars)
		}
	}
}

func TestApplyJobFilterSalaryBounds(t *testing.T) {
	lo, hi := 50000, 90000
	sql, vars := listingSQL(t, models.JobFilter{MinSalary: &lo, MaxSalary: &hi})

	if !strings.Contains(sql, "(salary->>'min')::int >= ") {
		t.Fatalf("min salary predicate missing in %q", sql)
	}
	if !strings.Contains(sql, "(salary->>'max')::int <= ") {
		t.Fatalf("max salary predicate missing in %q", sql)
	}
	if len(vars) != 3 {
		t.Fatalf("vars = %v, want status + both bounds", vars)
	}
}

func TestApplyJobFilterRemoteAndExactMatches(t *testing.T) {
	sql, vars := listingSQL(t, models.JobFilter{
		JobType:         "full-time",
		ExperienceLevel: "mid",
		Category:        "engineering",
		Remote:          true,
	})

	for _, pred := range []string{
		"job_type = ",
		"experience_level = ",
		"category = ",
		"(location->>'remote')::boolean IS TRUE",
	} {
		if !strings.Contains(sql, pred) {
			t.Fatalf("predicate %q missing in %q", pred, sql)
		}
	}
	if len(vars) != 4 {
		t.Fatalf("vars = %v, want status + three exact matches", vars)
	}
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		in   models.SortOrder
		want string
	}{
		{models.SortOrder{Field: "createdAt", Desc: true}, "created_at DESC"},
		{models.SortOrder{Field: "title"}, "title ASC"},
		{models.SortOrder{Field: "views", Desc: true}, "views DESC"},
		{models.SortOrder{Field: "applicationsCount"}, "applications_count ASC"},
		// anything off the whitelist falls back to created_at
		{models.SortOrder{Field: "password"}, "created_at ASC"},
		{models.SortOrder{Field: "id; DROP TABLE jobs", Desc: true}, "created_at DESC"},
	}
	for _, tc := range cases {
		if got := orderClause(tc.in); got != tc.want {
			t.Errorf("orderClause(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
