package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForbidden(t *testing.T) {
	lab := Room{ID: "lab", Type: "lab", Capacity: 20}
	classroom := Room{ID: "class", Type: "classroom", Capacity: 40}

	labCourse := Course{ID: "c1", NeedsLab: true, ExpectedEnrollment: 18}
	bigCourse := Course{ID: "c2", NeedsLab: false, ExpectedEnrollment: 35}

	assert.False(t, Forbidden(labCourse, lab))
	assert.True(t, Forbidden(labCourse, classroom), "lab course may not use a classroom")
	assert.True(t, Forbidden(bigCourse, lab), "enrollment exceeds lab capacity")
	assert.False(t, Forbidden(bigCourse, classroom))
}

func TestEligibleRoomsPreservesOrder(t *testing.T) {
	rooms := []Room{
		{ID: "a", Type: "classroom", Capacity: 10},
		{ID: "b", Type: "classroom", Capacity: 30},
		{ID: "c", Type: "classroom", Capacity: 50},
	}
	course := Course{ExpectedEnrollment: 25}

	eligible := EligibleRooms(course, rooms)
	assert.Len(t, eligible, 2)
	assert.Equal(t, "b", eligible[0].ID)
	assert.Equal(t, "c", eligible[1].ID)
}

func TestEligibleRoomsEmpty(t *testing.T) {
	course := Course{ExpectedEnrollment: 100}
	eligible := EligibleRooms(course, []Room{{ID: "a", Capacity: 10}})
	assert.Empty(t, eligible)
}
