package scheduler

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// NoValidSlotsNote flags runs that had nothing schedulable to work with.
const NoValidSlotsNote = "no_valid_slots"

// BuildingAffinity pins departments to a named building as a hard
// preference. The rule is relaxed, never fatal: when it would eliminate
// every candidate room for a course it is ignored for that course.
type BuildingAffinity map[string]string

// ParseAffinity reads "department=building" entries into an affinity table.
// Malformed entries are skipped.
func ParseAffinity(entries []string) BuildingAffinity {
	if len(entries) == 0 {
		return nil
	}
	affinity := make(BuildingAffinity, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		dept := strings.TrimSpace(parts[0])
		building := strings.TrimSpace(parts[1])
		if dept == "" || building == "" {
			continue
		}
		affinity[dept] = building
	}
	return affinity
}

func (a BuildingAffinity) apply(course Course, rooms []Room) []Room {
	if a == nil || course.Department == "" {
		return rooms
	}
	building, ok := a[course.Department]
	if !ok {
		return rooms
	}
	pinned := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Building == building {
			pinned = append(pinned, room)
		}
	}
	if len(pinned) == 0 {
		return rooms
	}
	return pinned
}

// NewTieBreaker returns a pseudo-random source seeded from the tenant
// identifier, so repeated runs for one tenant break ties identically while
// different tenants spread load across otherwise-equal rooms.
func NewTieBreaker(tenantID string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(tenantID))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// Assign packs courses into rooms and period blocks with a greedy
// heuristic. Lab courses and large courses are placed first, each into the
// tightest-fitting legal room, one block per required hour group. The rng
// only breaks ordering ties and must be seeded per tenant (NewTieBreaker).
func Assign(in Input, rng *rand.Rand, affinity BuildingAffinity) Plan {
	groupSize := in.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}

	slots := dedupeSlots(in.Slots)
	blocks := GroupSlots(slots, groupSize)
	if len(slots) == 0 || len(blocks) == 0 {
		return Plan{Stats: Stats{TotalCourses: len(in.Courses), Note: NoValidSlotsNote}}
	}

	courses := make([]Course, len(in.Courses))
	copy(courses, in.Courses)
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].NeedsLab != courses[j].NeedsLab {
			return courses[i].NeedsLab
		}
		return courses[i].ExpectedEnrollment > courses[j].ExpectedEnrollment
	})

	// Claims are tracked twice per room: whole blocks to avoid re-selecting
	// an identical block, and single periods to reject overlapping blocks.
	usedBlocks := make(map[string]map[string]bool)
	usedPeriods := make(map[string]map[string]map[int]bool)

	var assignments []Assignment
	assignedCourses := 0

	for _, course := range courses {
		blocksNeeded := hoursToBlocks(course.HoursPerWeek, groupSize)
		candidates := in.Rooms
		if in.UseForbidden {
			candidates = EligibleRooms(course, candidates)
		}
		candidates = affinity.apply(course, candidates)
		candidates = orderRooms(course, candidates, rng)

		placed := 0
		for _, room := range candidates {
			for placed < blocksNeeded {
				block, ok := pickBlock(room, course, blocks, usedBlocks[room.ID], usedPeriods[room.ID])
				if !ok {
					break
				}
				claim(room.ID, block, usedBlocks, usedPeriods)
				assignments = append(assignments, Assignment{
					CourseID: course.ID,
					RoomID:   room.ID,
					SlotIDs:  append([]string(nil), block.SlotIDs...),
				})
				placed++
			}
			if placed >= blocksNeeded {
				break
			}
		}
		if placed > 0 {
			assignedCourses++
		}
	}

	return Plan{
		Assignments: assignments,
		Stats: Stats{
			TotalCourses:    len(courses),
			AssignedCourses: assignedCourses,
			AssignmentCount: len(assignments),
		},
	}
}

// dedupeSlots keeps the first slot seen for each (day, period) cell.
func dedupeSlots(slots []Slot) []Slot {
	type cell struct {
		day    string
		period int
	}
	seen := make(map[cell]bool, len(slots))
	deduped := make([]Slot, 0, len(slots))
	for _, s := range slots {
		key := cell{day: s.Day, period: s.Period}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, s)
	}
	return deduped
}

func hoursToBlocks(hoursPerWeek, groupSize int) int {
	hours := hoursPerWeek
	if hours < 1 {
		hours = 1
	}
	return int(math.Ceil(float64(hours) / float64(groupSize)))
}

// orderRooms sorts candidates lab-match first, then tightest capacity fit,
// with a seeded random value deciding between otherwise-equal rooms so the
// lexicographically first room is not systematically favoured.
func orderRooms(course Course, rooms []Room, rng *rand.Rand) []Room {
	ordered := make([]Room, len(rooms))
	copy(ordered, rooms)
	tie := make(map[string]float64, len(ordered))
	for _, room := range ordered {
		tie[room.ID] = rng.Float64()
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		mi := course.NeedsLab && ordered[i].Type != RoomTypeLab
		mj := course.NeedsLab && ordered[j].Type != RoomTypeLab
		if mi != mj {
			return !mi
		}
		if ordered[i].Capacity != ordered[j].Capacity {
			return ordered[i].Capacity < ordered[j].Capacity
		}
		return tie[ordered[i].ID] < tie[ordered[j].ID]
	})
	return ordered
}

// pickBlock selects the unclaimed, non-overlapping block minimizing
// (seat slack, earliest period) for the room.
func pickBlock(room Room, course Course, blocks []Block, roomBlocks map[string]bool, roomPeriods map[string]map[int]bool) (Block, bool) {
	best := -1
	bestSlack := 0
	bestPeriod := 0
	for i, block := range blocks {
		if roomBlocks[blockKey(block)] {
			continue
		}
		if overlaps(block, roomPeriods) {
			continue
		}
		slack := room.Capacity - course.ExpectedEnrollment
		earliest := block.Periods[0]
		if best == -1 || slack < bestSlack || (slack == bestSlack && earliest < bestPeriod) {
			best = i
			bestSlack = slack
			bestPeriod = earliest
		}
	}
	if best == -1 {
		return Block{}, false
	}
	return blocks[best], true
}

func overlaps(block Block, roomPeriods map[string]map[int]bool) bool {
	day := roomPeriods[block.Day]
	if day == nil {
		return false
	}
	for _, period := range block.Periods {
		if day[period] {
			return true
		}
	}
	return false
}

func claim(roomID string, block Block, usedBlocks map[string]map[string]bool, usedPeriods map[string]map[string]map[int]bool) {
	if usedBlocks[roomID] == nil {
		usedBlocks[roomID] = make(map[string]bool)
	}
	usedBlocks[roomID][blockKey(block)] = true

	if usedPeriods[roomID] == nil {
		usedPeriods[roomID] = make(map[string]map[int]bool)
	}
	if usedPeriods[roomID][block.Day] == nil {
		usedPeriods[roomID][block.Day] = make(map[int]bool)
	}
	for _, period := range block.Periods {
		usedPeriods[roomID][block.Day][period] = true
	}
}

func blockKey(block Block) string {
	return block.Day + ":" + strings.Join(block.SlotIDs, ",")
}
