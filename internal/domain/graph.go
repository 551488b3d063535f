package domain

// Collection names used as counter keys in the graph.
const (
	CollUsers         = "users"
	CollRequirements  = "requirements"
	CollPostings      = "postings"
	CollCandidates    = "candidates"
	CollInterviews    = "interviews"
	CollEmployees     = "employees"
	CollLeaveRequests = "leaveRequests"
	CollStatusChanges = "statusChanges"
	CollEmailLogs     = "emailLogs"
)

// Graph is the whole persisted document: every collection in insertion
// order plus the per-collection id counters. It is serialized as a single
// JSON document on every write.
type Graph struct {
	Users         []User         `json:"users"`
	Requirements  []Requirement  `json:"requirements"`
	Postings      []Posting      `json:"postings"`
	Candidates    []Candidate    `json:"candidates"`
	Employees     []Employee     `json:"employees"`
	LeaveRequests []LeaveRequest `json:"leaveRequests"`
	StatusChanges []StatusChange `json:"statusChanges"`
	EmailLogs     []EmailLog     `json:"emailLogs"`
	Counters      map[string]int `json:"counters"`
}

// NewGraph returns an empty graph ready for use.
func NewGraph() *Graph {
	return &Graph{Counters: make(map[string]int)}
}

// NextID mints a fresh integer id for the collection, strictly greater than
// every id previously issued for it. Callers must hold the store write lock.
func (g *Graph) NextID(collection string) int {
	if g.Counters == nil {
		g.Counters = make(map[string]int)
	}
	g.Counters[collection]++
	return g.Counters[collection]
}

// RequirementByID returns a pointer into the graph, or nil.
func (g *Graph) RequirementByID(id int) *Requirement {
	for i := range g.Requirements {
		if g.Requirements[i].ID == id {
			return &g.Requirements[i]
		}
	}
	return nil
}

// PostingByID returns a pointer into the graph, or nil.
func (g *Graph) PostingByID(id int) *Posting {
	for i := range g.Postings {
		if g.Postings[i].ID == id {
			return &g.Postings[i]
		}
	}
	return nil
}

// CandidateByID returns a pointer into the graph, or nil.
func (g *Graph) CandidateByID(id int) *Candidate {
	for i := range g.Candidates {
		if g.Candidates[i].ID == id {
			return &g.Candidates[i]
		}
	}
	return nil
}

// EmployeeByID returns a pointer into the graph, or nil.
func (g *Graph) EmployeeByID(id int) *Employee {
	for i := range g.Employees {
		if g.Employees[i].ID == id {
			return &g.Employees[i]
		}
	}
	return nil
}

// LeaveRequestByID returns a pointer into the graph, or nil.
func (g *Graph) LeaveRequestByID(id int) *LeaveRequest {
	for i := range g.LeaveRequests {
		if g.LeaveRequests[i].ID == id {
			return &g.LeaveRequests[i]
		}
	}
	return nil
}
