package domain

import "time"

// User is an HR staff account established through login.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	PictureURL string    `json:"pictureUrl,omitempty"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Requirement is a budget/headcount request that gates posting creation.
type Requirement struct {
	ID              int               `json:"id"`
	Title           string            `json:"title"`
	Department      string            `json:"department"`
	Description     string            `json:"description,omitempty"`
	Budget          float64           `json:"budget"`
	Positions       int               `json:"positions"`
	Status          RequirementStatus `json:"status"`
	CreatedBy       string            `json:"createdBy"`
	ApprovedBy      *string           `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	RejectionReason *string           `json:"rejectionReason,omitempty"`
	FilledPositions int               `json:"filledPositions"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Posting is a published vacancy derived from an approved requirement.
type Posting struct {
	ID                  int           `json:"id"`
	RequirementID       int           `json:"requirementId"`
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	Department          string        `json:"department"`
	Location            string        `json:"location"`
	SalaryRange         string        `json:"salaryRange,omitempty"`
	ApplicationDeadline string        `json:"applicationDeadline,omitempty"`
	Status              PostingStatus `json:"status"`
	ApplicantCount      int           `json:"applicantCount"`
	CreatedBy           string        `json:"createdBy"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// Interview is one interview round recorded against a candidate. IDs are
// issued from their own counter, so they are unique across all candidates.
type Interview struct {
	ID          int       `json:"id"`
	Date        string    `json:"date"`
	Interviewer string    `json:"interviewer"`
	Rating      int       `json:"rating"`
	Feedback    string    `json:"feedback,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Note is a timestamped free-text annotation on a candidate.
type Note struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Candidate is an applicant tied to exactly one posting via a unique
// (posting, email) pair.
type Candidate struct {
	ID              int             `json:"id"`
	JobPostingID    int             `json:"jobPostingId"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	Resume          string          `json:"resume,omitempty"`
	Experience      string          `json:"experience,omitempty"`
	Skills          []string        `json:"skills"`
	LinkedinProfile string          `json:"linkedinProfile,omitempty"`
	Status          CandidateStatus `json:"status"`
	Interviews      []Interview     `json:"interviews"`
	Notes           []Note          `json:"notes"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Employee is a staff record, including exit management fields.
type Employee struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Department string         `json:"department"`
	Position   string         `json:"position"`
	Salary     float64        `json:"salary"`
	JoinDate   string         `json:"joinDate"`
	Status     EmployeeStatus `json:"status"`
	ExitDate   *string        `json:"exitDate,omitempty"`
	ExitReason *string        `json:"exitReason,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// LeaveRequest is a leave application tied to an employee.
type LeaveRequest struct {
	ID           int         `json:"id"`
	EmployeeID   int         `json:"employeeId"`
	Type         LeaveType   `json:"type"`
	StartDate    string      `json:"startDate"`
	EndDate      string      `json:"endDate"`
	Days         int         `json:"days"`
	Reason       string      `json:"reason,omitempty"`
	Status       LeaveStatus `json:"status"`
	DecidedBy    *string     `json:"decidedBy,omitempty"`
	DecisionNote *string     `json:"decisionNote,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// StatusChange is an append-only audit row, one per candidate transition.
// Rows are written even when the old and new status are equal.
type StatusChange struct {
	ID          int             `json:"id"`
	CandidateID int             `json:"candidateId"`
	OldStatus   CandidateStatus `json:"oldStatus"`
	NewStatus   CandidateStatus `json:"newStatus"`
	At          time.Time       `json:"at"`
}

// EmailLog is an append-only audit row, one per send attempt.
type EmailLog struct {
	ID          int       `json:"id"`
	CandidateID int       `json:"candidateId"`
	EmailType   string    `json:"emailType"`
	Recipient   string    `json:"recipient"`
	MessageID   string    `json:"messageId,omitempty"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	At          time.Time `json:"at"`
}

// Email log statuses.
const (
	EmailSent   = "sent"
	EmailFailed = "failed"
)
