package scheduler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mondayGrid(periods int) []Slot {
	slots := make([]Slot, 0, periods)
	for p := 1; p <= periods; p++ {
		slots = append(slots, slotOn(fmt.Sprintf("mon-%d", p), "Mon", p))
	}
	return slots
}

func TestAssignLabFirstTightestFit(t *testing.T) {
	in := Input{
		TenantID: "tenant-a",
		Courses: []Course{
			{ID: "hist", Code: "HIST201", HoursPerWeek: 1, ExpectedEnrollment: 30},
			{ID: "cs", Code: "CS101", HoursPerWeek: 2, NeedsLab: true, ExpectedEnrollment: 18},
		},
		Rooms: []Room{
			{ID: "lab-1", Type: RoomTypeLab, Capacity: 20},
			{ID: "room-1", Type: "classroom", Capacity: 40},
		},
		Slots:        mondayGrid(9),
		GroupSize:    1,
		UseForbidden: true,
	}

	plan := Assign(in, NewTieBreaker(in.TenantID), nil)

	assert.Equal(t, 2, plan.Stats.TotalCourses)
	assert.Equal(t, 2, plan.Stats.AssignedCourses)
	assert.Equal(t, 3, plan.Stats.AssignmentCount)
	assert.Empty(t, plan.Stats.Note)

	byCourse := make(map[string][]Assignment)
	for _, a := range plan.Assignments {
		byCourse[a.CourseID] = append(byCourse[a.CourseID], a)
	}

	require.Len(t, byCourse["cs"], 2, "two weekly hours need two blocks")
	seen := make(map[string]bool)
	for _, a := range byCourse["cs"] {
		assert.Equal(t, "lab-1", a.RoomID, "lab course lands in the lab")
		require.Len(t, a.SlotIDs, 1)
		assert.False(t, seen[a.SlotIDs[0]], "blocks must be distinct")
		seen[a.SlotIDs[0]] = true
	}

	require.Len(t, byCourse["hist"], 1)
	assert.Equal(t, "room-1", byCourse["hist"][0].RoomID, "enrollment 30 exceeds the lab")
}

func TestAssignOversizedCourseLeftOut(t *testing.T) {
	in := Input{
		TenantID: "tenant-a",
		Courses: []Course{
			{ID: "small", HoursPerWeek: 1, ExpectedEnrollment: 10},
			{ID: "huge", HoursPerWeek: 1, ExpectedEnrollment: 50},
		},
		Rooms: []Room{
			{ID: "room-1", Type: "classroom", Capacity: 40},
		},
		Slots:        mondayGrid(9),
		GroupSize:    1,
		UseForbidden: true,
	}

	plan := Assign(in, NewTieBreaker(in.TenantID), nil)

	assert.Equal(t, 1, plan.Stats.AssignedCourses)
	assert.Equal(t, 2, plan.Stats.TotalCourses)
	for _, a := range plan.Assignments {
		assert.NotEqual(t, "huge", a.CourseID)
	}
}

func TestAssignNoValidSlots(t *testing.T) {
	in := Input{
		TenantID:  "tenant-a",
		Courses:   []Course{{ID: "c1", HoursPerWeek: 1, ExpectedEnrollment: 10}},
		Rooms:     []Room{{ID: "r1", Capacity: 40}},
		GroupSize: 1,
	}

	plan := Assign(in, NewTieBreaker(in.TenantID), nil)

	assert.Empty(t, plan.Assignments)
	assert.Equal(t, 1, plan.Stats.TotalCourses)
	assert.Equal(t, 0, plan.Stats.AssignedCourses)
	assert.Equal(t, NoValidSlotsNote, plan.Stats.Note)
}

func TestAssignDeterministicPerTenant(t *testing.T) {
	in := Input{
		TenantID: "tenant-a",
		Courses: []Course{
			{ID: "c1", HoursPerWeek: 2, ExpectedEnrollment: 20},
			{ID: "c2", HoursPerWeek: 2, ExpectedEnrollment: 20},
			{ID: "c3", HoursPerWeek: 1, ExpectedEnrollment: 20},
		},
		Rooms: []Room{
			{ID: "r1", Capacity: 30},
			{ID: "r2", Capacity: 30},
			{ID: "r3", Capacity: 30},
		},
		Slots:        mondayGrid(9),
		GroupSize:    1,
		UseForbidden: true,
	}

	first := Assign(in, NewTieBreaker(in.TenantID), nil)
	second := Assign(in, NewTieBreaker(in.TenantID), nil)
	assert.Equal(t, first, second, "same tenant seed replays the same plan")
}

func TestAssignNeverDoubleBooksARoom(t *testing.T) {
	courses := make([]Course, 6)
	for i := range courses {
		courses[i] = Course{ID: fmt.Sprintf("c%d", i), HoursPerWeek: 3, ExpectedEnrollment: 25}
	}
	in := Input{
		TenantID:     "tenant-b",
		Courses:      courses,
		Rooms:        []Room{{ID: "r1", Capacity: 30}, {ID: "r2", Capacity: 30}},
		Slots:        mondayGrid(9),
		GroupSize:    1,
		UseForbidden: true,
	}

	plan := Assign(in, NewTieBreaker(in.TenantID), nil)

	claimed := make(map[string]bool)
	for _, a := range plan.Assignments {
		for _, slotID := range a.SlotIDs {
			key := a.RoomID + "/" + slotID
			assert.False(t, claimed[key], "room %s slot %s claimed twice", a.RoomID, slotID)
			claimed[key] = true
		}
	}
}

func TestAssignDedupesGridCells(t *testing.T) {
	slots := []Slot{
		slotOn("dup-a", "Mon", 1),
		slotOn("dup-b", "Mon", 1), // same cell, different ID
	}
	in := Input{
		TenantID:     "tenant-a",
		Courses:      []Course{{ID: "c1", HoursPerWeek: 2, ExpectedEnrollment: 10}},
		Rooms:        []Room{{ID: "r1", Capacity: 40}},
		Slots:        slots,
		GroupSize:    1,
		UseForbidden: true,
	}

	plan := Assign(in, NewTieBreaker(in.TenantID), nil)

	require.Len(t, plan.Assignments, 1, "only one real grid cell exists")
	assert.Equal(t, []string{"dup-a"}, plan.Assignments[0].SlotIDs, "first slot wins the cell")
}

func TestAssignGroupedBlocks(t *testing.T) {
	in := Input{
		TenantID:     "tenant-a",
		Courses:      []Course{{ID: "c1", HoursPerWeek: 4, ExpectedEnrollment: 10}},
		Rooms:        []Room{{ID: "r1", Capacity: 40}},
		Slots:        mondayGrid(9),
		GroupSize:    2,
		UseForbidden: true,
	}

	plan := Assign(in, NewTieBreaker(in.TenantID), nil)

	require.Len(t, plan.Assignments, 2, "four hours at group size two")
	periods := make(map[string]bool)
	for _, a := range plan.Assignments {
		require.Len(t, a.SlotIDs, 2)
		for _, id := range a.SlotIDs {
			assert.False(t, periods[id], "grouped blocks must not overlap")
			periods[id] = true
		}
	}
}

func TestAssignWithoutForbiddenRule(t *testing.T) {
	in := Input{
		TenantID:     "tenant-a",
		Courses:      []Course{{ID: "huge", HoursPerWeek: 1, ExpectedEnrollment: 50}},
		Rooms:        []Room{{ID: "r1", Capacity: 10}},
		Slots:        mondayGrid(3),
		GroupSize:    1,
		UseForbidden: false,
	}

	plan := Assign(in, NewTieBreaker(in.TenantID), nil)
	assert.Equal(t, 1, plan.Stats.AssignedCourses, "relaxed run ignores capacity")
}

func TestParseAffinity(t *testing.T) {
	affinity := ParseAffinity([]string{"CS=Engineering", " Math = Science ", "bad-entry", "=x", "y="})
	require.Len(t, affinity, 2)
	assert.Equal(t, "Engineering", affinity["CS"])
	assert.Equal(t, "Science", affinity["Math"])

	assert.Nil(t, ParseAffinity(nil))
}

func TestAffinityPinsAndRelaxes(t *testing.T) {
	affinity := BuildingAffinity{"CS": "Engineering"}
	rooms := []Room{
		{ID: "eng-1", Capacity: 30, Building: "Engineering"},
		{ID: "sci-1", Capacity: 30, Building: "Science"},
	}

	pinned := affinity.apply(Course{Department: "CS"}, rooms)
	require.Len(t, pinned, 1)
	assert.Equal(t, "eng-1", pinned[0].ID)

	// No room in the pinned building: the rule steps aside.
	relaxed := affinity.apply(Course{Department: "CS"}, rooms[1:])
	assert.Len(t, relaxed, 1)

	// Unpinned departments are untouched.
	assert.Len(t, affinity.apply(Course{Department: "Math"}, rooms), 2)
}

func TestGreedyBackendSolve(t *testing.T) {
	backend := GreedyBackend{}
	assert.Equal(t, "greedy", backend.Name())
	assert.True(t, backend.Available())

	plan, err := backend.Solve(context.Background(), Input{
		TenantID:     "tenant-a",
		Courses:      []Course{{ID: "c1", HoursPerWeek: 1, ExpectedEnrollment: 10}},
		Rooms:        []Room{{ID: "r1", Capacity: 40}},
		Slots:        mondayGrid(2),
		GroupSize:    1,
		UseForbidden: true,
	})
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, 1, plan.Stats.AssignedCourses)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(GreedyBackend{}, MILPBackend{}, CPSATBackend{})

	backend, ok := registry.Lookup("milp")
	require.True(t, ok)
	assert.False(t, backend.Available())

	_, ok = registry.Lookup("annealing")
	assert.False(t, ok)

	assert.Equal(t, map[string]bool{"greedy": true, "milp": false, "cpsat": false}, registry.Availability())
}
