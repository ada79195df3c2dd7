package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/09samarth/ai-voting-system/auth"
	"github.com/09samarth/ai-voting-system/db"
	"github.com/09samarth/ai-voting-system/models"
	"github.com/09samarth/ai-voting-system/testutil"
)

func TestSeedCandidates(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	hash := auth.HashPassword("test-password", "test-salt")
	if err := db.Seed(conn, "admin", hash); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	store := db.New(conn)
	candidates, err := store.ListCandidates(context.Background())
	if err != nil {
		t.Fatalf("ListCandidates failed: %v", err)
	}

	if len(candidates) != 9 {
		t.Fatalf("Expected 9 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != 1 || candidates[0].Name != "BJP" {
		t.Errorf("Expected candidate 1 to be BJP, got %d %q", candidates[0].ID, candidates[0].Name)
	}
	if candidates[1].Name != "CONGRESS" {
		t.Errorf("Expected candidate 2 to be CONGRESS, got %q", candidates[1].Name)
	}
	if candidates[8].Name != "SP" {
		t.Errorf("Expected candidate 9 to be SP, got %q", candidates[8].Name)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	hash := auth.HashPassword("test-password", "test-salt")
	if err := db.Seed(conn, "admin", hash); err != nil {
		t.Fatalf("First seed failed: %v", err)
	}
	if err := db.Seed(conn, "admin", hash); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	var voters int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM voter`).Scan(&voters); err != nil {
		t.Fatalf("Failed to count voters: %v", err)
	}
	if voters != 200 {
		t.Errorf("Expected 200 voters after double seed, got %d", voters)
	}

	var admins int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM admin`).Scan(&admins); err != nil {
		t.Fatalf("Failed to count admins: %v", err)
	}
	if admins != 1 {
		t.Errorf("Expected 1 admin after double seed, got %d", admins)
	}
}

func TestRecordVoteAndTotals(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedTestCandidates(t, conn, "BJP", "CONGRESS", "JDS")

	store := db.New(conn)
	ctx := context.Background()

	if err := store.RecordVote(ctx, "1-12", 2); err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}
	if err := store.RecordVote(ctx, "3-78", 2); err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}
	// Same voter voting again is allowed - votes are append-only
	if err := store.RecordVote(ctx, "1-12", 1); err != nil {
		t.Fatalf("Duplicate voter RecordVote failed: %v", err)
	}

	totals, err := store.VoteTotals(ctx)
	if err != nil {
		t.Fatalf("VoteTotals failed: %v", err)
	}

	if len(totals) != 3 {
		t.Fatalf("Expected totals for all 3 candidates, got %d", len(totals))
	}
	if totals[0].Votes != 1 {
		t.Errorf("Expected 1 vote for BJP, got %d", totals[0].Votes)
	}
	if totals[1].Votes != 2 {
		t.Errorf("Expected 2 votes for CONGRESS, got %d", totals[1].Votes)
	}
	if totals[2].Votes != 0 {
		t.Errorf("Expected 0 votes for JDS, got %d", totals[2].Votes)
	}
}

func TestVoteLog(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedTestCandidates(t, conn, "BJP", "CONGRESS")

	store := db.New(conn)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.RecordVote(ctx, "2-45", 1); err != nil {
			t.Fatalf("RecordVote failed: %v", err)
		}
	}

	entries, err := store.VoteLog(ctx, 3)
	if err != nil {
		t.Fatalf("VoteLog failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected limit of 3 entries, got %d", len(entries))
	}
	if entries[0].CandidateName != "BJP" {
		t.Errorf("Expected candidate name BJP, got %q", entries[0].CandidateName)
	}
}

func TestVoterLifecycle(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.New(conn)
	ctx := context.Background()

	created, err := store.CreateVoter(ctx, models.CreateVoterRequest{
		VoterID:      "5-321",
		Name:         "Test Voter",
		Constituency: "Constituency 5",
		Language:     "en",
	})
	if err != nil {
		t.Fatalf("CreateVoter failed: %v", err)
	}
	if created.AccessibilityFlag != models.AccessibilityNormal {
		t.Errorf("Expected default accessibility flag, got %q", created.AccessibilityFlag)
	}
	if !created.Enabled {
		t.Error("Expected new voter to be enabled")
	}

	if err := store.SetVoterEnabled(ctx, "5-321", false); err != nil {
		t.Fatalf("SetVoterEnabled failed: %v", err)
	}

	got, err := store.GetVoter(ctx, "5-321")
	if err != nil {
		t.Fatalf("GetVoter failed: %v", err)
	}
	if got.Enabled {
		t.Error("Expected voter to be disabled")
	}

	voters, err := store.ListVoters(ctx)
	if err != nil {
		t.Fatalf("ListVoters failed: %v", err)
	}
	if len(voters) != 1 {
		t.Fatalf("Expected 1 voter, got %d", len(voters))
	}

	if err := store.SetVoterEnabled(ctx, "9-999", true); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown voter, got %v", err)
	}
	if _, err := store.GetVoter(ctx, "9-999"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown voter, got %v", err)
	}
}

func TestElectionLifecycle(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedTestCandidates(t, conn, "BJP", "CONGRESS", "JDS")

	store := db.New(conn)
	ctx := context.Background()

	election, err := store.CreateElection(ctx, "General Election 2026")
	if err != nil {
		t.Fatalf("CreateElection failed: %v", err)
	}
	if election.Active {
		t.Error("Expected new election to be inactive")
	}

	if err := store.AssignCandidate(ctx, election.ID, 1); err != nil {
		t.Fatalf("AssignCandidate failed: %v", err)
	}
	if err := store.AssignCandidate(ctx, election.ID, 3); err != nil {
		t.Fatalf("AssignCandidate failed: %v", err)
	}
	// Re-assigning is a no-op, not an error
	if err := store.AssignCandidate(ctx, election.ID, 1); err != nil {
		t.Fatalf("Re-assign failed: %v", err)
	}

	if err := store.SetElectionActive(ctx, election.ID, true); err != nil {
		t.Fatalf("SetElectionActive failed: %v", err)
	}

	elections, err := store.ListElections(ctx)
	if err != nil {
		t.Fatalf("ListElections failed: %v", err)
	}
	if len(elections) != 1 {
		t.Fatalf("Expected 1 election, got %d", len(elections))
	}
	if !elections[0].Active {
		t.Error("Expected election to be active")
	}
	if len(elections[0].CandidateIDs) != 2 {
		t.Fatalf("Expected 2 assigned candidates, got %d", len(elections[0].CandidateIDs))
	}
	if elections[0].CandidateIDs[0] != 1 || elections[0].CandidateIDs[1] != 3 {
		t.Errorf("Expected candidates [1 3], got %v", elections[0].CandidateIDs)
	}

	if err := store.RemoveCandidate(ctx, election.ID, 3); err != nil {
		t.Fatalf("RemoveCandidate failed: %v", err)
	}
	if err := store.RemoveCandidate(ctx, election.ID, 3); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound removing unassigned candidate, got %v", err)
	}

	if err := store.AssignCandidate(ctx, "no-such-election", 1); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown election, got %v", err)
	}
}

func TestAdminAccountsAndLog(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	testutil.CreateTestAdmin(t, conn, cfg)

	store := db.New(conn)
	ctx := context.Background()

	admin, err := store.GetAdmin(ctx, cfg.AdminUser)
	if err != nil {
		t.Fatalf("GetAdmin failed: %v", err)
	}
	if err := auth.VerifyPassword(cfg.AdminPass, admin.PasswordHash, cfg.AdminKeySalt); err != nil {
		t.Errorf("Seeded admin password did not verify: %v", err)
	}

	if _, err := store.GetAdmin(ctx, "nobody"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown admin, got %v", err)
	}

	if err := store.RecordAdminAction(ctx, cfg.AdminUser, "create_voter", "5-321"); err != nil {
		t.Fatalf("RecordAdminAction failed: %v", err)
	}
	if err := store.RecordAdminAction(ctx, cfg.AdminUser, "disable_voter", "5-321"); err != nil {
		t.Fatalf("RecordAdminAction failed: %v", err)
	}

	entries, err := store.AdminLog(ctx, 10)
	if err != nil {
		t.Fatalf("AdminLog failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Action == "" || entries[0].Username != cfg.AdminUser {
		t.Errorf("Unexpected log entry: %+v", entries[0])
	}
}
