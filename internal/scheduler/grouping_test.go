package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotOn(id, day string, period int) Slot {
	start, end := PeriodRange(period)
	return Slot{ID: id, Day: day, Period: period, Start: start, End: end}
}

func TestGroupSlotsSingleton(t *testing.T) {
	slots := []Slot{slotOn("s1", "Mon", 1), slotOn("s2", "Tue", 3)}

	blocks := GroupSlots(slots, 1)
	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"s1"}, blocks[0].SlotIDs)
	assert.Equal(t, []string{"s2"}, blocks[1].SlotIDs)

	assert.Len(t, GroupSlots(slots, 0), 2, "group size zero behaves like singletons")
}

func TestGroupSlotsSlidingWindows(t *testing.T) {
	slots := []Slot{
		slotOn("m1", "Mon", 1),
		slotOn("m2", "Mon", 2),
		slotOn("m3", "Mon", 3),
	}

	blocks := GroupSlots(slots, 2)
	require.Len(t, blocks, 2, "stride-1 windows overlap")
	assert.Equal(t, []string{"m1", "m2"}, blocks[0].SlotIDs)
	assert.Equal(t, []string{"m2", "m3"}, blocks[1].SlotIDs)
	assert.Equal(t, []int{1, 2}, blocks[0].Periods)
	assert.Equal(t, []int{2, 3}, blocks[1].Periods)
}

func TestGroupSlotsNeverSpansDays(t *testing.T) {
	slots := []Slot{
		slotOn("m9", "Mon", 9),
		slotOn("t1", "Tue", 1),
		slotOn("t2", "Tue", 2),
	}

	blocks := GroupSlots(slots, 2)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Tue", blocks[0].Day)
	assert.Equal(t, []string{"t1", "t2"}, blocks[0].SlotIDs)
}

func TestGroupSlotsSortsWithinDay(t *testing.T) {
	slots := []Slot{
		slotOn("m3", "Mon", 3),
		slotOn("m1", "Mon", 1),
		slotOn("m2", "Mon", 2),
	}

	blocks := GroupSlots(slots, 3)
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"m1", "m2", "m3"}, blocks[0].SlotIDs)
}

func TestGroupSlotsTooFewSlots(t *testing.T) {
	blocks := GroupSlots([]Slot{slotOn("m1", "Mon", 1)}, 2)
	assert.Empty(t, blocks)
}
