package domain

// RequirementStatus is the lifecycle state of a job requirement.
type RequirementStatus string

const (
	RequirementPending  RequirementStatus = "pending"
	RequirementApproved RequirementStatus = "approved"
	RequirementRejected RequirementStatus = "rejected"
	RequirementClosed   RequirementStatus = "closed"
)

// Valid reports whether the status is one of the known values.
func (s RequirementStatus) Valid() bool {
	switch s {
	case RequirementPending, RequirementApproved, RequirementRejected, RequirementClosed:
		return true
	}
	return false
}

// PostingStatus is the lifecycle state of a job posting.
type PostingStatus string

const (
	PostingOpen   PostingStatus = "open"
	PostingClosed PostingStatus = "closed"
	PostingFilled PostingStatus = "filled"
)

func (s PostingStatus) Valid() bool {
	switch s {
	case PostingOpen, PostingClosed, PostingFilled:
		return true
	}
	return false
}

// CandidateStatus is the lifecycle state of a candidate. The value space is
// closed but the transition graph deliberately is not: callers may move a
// candidate between any two states, including out of selected or rejected.
type CandidateStatus string

const (
	CandidateApplied     CandidateStatus = "applied"
	CandidateShortlisted CandidateStatus = "shortlisted"
	CandidateInterviewed CandidateStatus = "interviewed"
	CandidateSelected    CandidateStatus = "selected"
	CandidateRejected    CandidateStatus = "rejected"
)

func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateApplied, CandidateShortlisted, CandidateInterviewed, CandidateSelected, CandidateRejected:
		return true
	}
	return false
}

// CandidateStatuses lists the five states in pipeline order.
func CandidateStatuses() []CandidateStatus {
	return []CandidateStatus{
		CandidateApplied,
		CandidateShortlisted,
		CandidateInterviewed,
		CandidateSelected,
		CandidateRejected,
	}
}

// EmployeeStatus is the lifecycle state of an employee record.
type EmployeeStatus string

const (
	EmployeeActive  EmployeeStatus = "active"
	EmployeeOnLeave EmployeeStatus = "on_leave"
	EmployeeExited  EmployeeStatus = "exited"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeOnLeave, EmployeeExited:
		return true
	}
	return false
}

// LeaveType classifies a leave request.
type LeaveType string

const (
	LeaveAnnual LeaveType = "annual"
	LeaveSick   LeaveType = "sick"
	LeaveUnpaid LeaveType = "unpaid"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeaveUnpaid:
		return true
	}
	return false
}

// LeaveStatus is the decision state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}
