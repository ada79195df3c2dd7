package models

import "time"

// Voter accessibility flags
const (
	AccessibilityNormal = "NORMAL"
	AccessibilityBlind  = "BLIND"
)

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateVoterRequest struct {
	VoterID           string `json:"voter_id"`
	Name              string `json:"name"`
	Constituency      string `json:"constituency"`
	Language          string `json:"language"`
	AccessibilityFlag string `json:"accessibility_flag"`
}

type SetVoterEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

type CreateElectionRequest struct {
	Name string `json:"name"`
}

type SetElectionActiveRequest struct {
	Active bool `json:"active"`
}

type AssignCandidateRequest struct {
	CandidateID int `json:"candidate_id"`
}

// Response types

type StartVotingResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// VotingStatusResponse is the polling surface for one voice voting session.
// Result is only present once the session has reached a terminal state.
type VotingStatusResponse struct {
	Status  string      `json:"status"`
	Step    int         `json:"step"`
	Message string      `json:"message"`
	Result  *VoteResult `json:"result,omitempty"`
}

// VoteResult is the terminal outcome of a voting session.
type VoteResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	VoterID   string `json:"voter_id,omitempty"`
	Candidate string `json:"candidate,omitempty"`
}

type ResetSessionResponse struct {
	Reset bool `json:"reset"`
}

type LoginResponse struct {
	Username string `json:"username"`
}

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
}

// Domain types

type Candidate struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Voter struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Constituency      string    `json:"constituency,omitempty"`
	Language          string    `json:"language,omitempty"`
	AccessibilityFlag string    `json:"accessibility_flag"`
	Enabled           bool      `json:"enabled"`
	CreatedAt         time.Time `json:"created_at"`
}

type Election struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Active       bool      `json:"active"`
	CandidateIDs []int     `json:"candidate_ids"`
	CreatedAt    time.Time `json:"created_at"`
}

type Admin struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// VoteTotal is one row of the aggregated results.
type VoteTotal struct {
	CandidateID   int    `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	Votes         int    `json:"votes"`
}

// VoteLogEntry is one row of the append-only vote audit trail. When carries
// a human-readable relative time for display.
type VoteLogEntry struct {
	ID            string    `json:"id"`
	VoterToken    string    `json:"voter_token"`
	CandidateID   int       `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	CastAt        time.Time `json:"cast_at"`
	When          string    `json:"when"`
}

type AdminLogEntry struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Action   string    `json:"action"`
	Detail   string    `json:"detail,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
	When     string    `json:"when"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
