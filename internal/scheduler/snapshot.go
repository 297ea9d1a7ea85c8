package scheduler

// RoomTypeLab marks rooms that satisfy lab requirements.
const RoomTypeLab = "lab"

// Course is a read-only projection of a catalog course, valid for one run.
type Course struct {
	ID                 string
	TenantID           string
	Code               string
	Name               string
	HoursPerWeek       int
	NeedsLab           bool
	ExpectedEnrollment int
	Department         string
	Cohort             string
}

// Room is a read-only projection of a catalog room.
type Room struct {
	ID       string
	TenantID string
	Name     string
	Type     string
	Capacity int
	Building string
}

// Slot is a normalized timeslot pinned to the canonical weekly grid.
type Slot struct {
	ID       string
	TenantID string
	Day      string
	Period   int
	Start    string
	End      string
}

// Block is a run of consecutive same-day periods treated as one
// schedulable unit.
type Block struct {
	Day     string
	Periods []int
	SlotIDs []string
}

// Assignment proposes one block of a room for a course.
type Assignment struct {
	CourseID string
	RoomID   string
	SlotIDs  []string
}

// Stats summarises one assignment run.
type Stats struct {
	TotalCourses    int    `json:"total_courses"`
	AssignedCourses int    `json:"assigned_courses"`
	AssignmentCount int    `json:"assignment_count"`
	Note            string `json:"note,omitempty"`
}

// Input carries everything one assignment run consumes.
type Input struct {
	TenantID     string
	Courses      []Course
	Rooms        []Room
	Slots        []Slot
	GroupSize    int
	UseForbidden bool
}

// Plan is the output of a solver backend or the greedy assigner.
type Plan struct {
	Assignments []Assignment
	Stats       Stats
}
