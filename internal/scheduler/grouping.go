package scheduler

import "sort"

// GroupSlots partitions slots by day, sorts each day by period, and emits
// every sliding window of groupSize consecutive entries as a candidate
// block. Windows advance with stride 1, so candidate blocks overlap;
// preventing a room from
// double-booking shared periods is the assigner's responsibility. A block
// never spans two days. With groupSize <= 1 every slot becomes a singleton
// block.
func GroupSlots(slots []Slot, groupSize int) []Block {
	if groupSize <= 1 {
		blocks := make([]Block, 0, len(slots))
		for _, s := range slots {
			blocks = append(blocks, Block{Day: s.Day, Periods: []int{s.Period}, SlotIDs: []string{s.ID}})
		}
		return blocks
	}

	byDay := make(map[string][]Slot)
	for _, s := range slots {
		byDay[s.Day] = append(byDay[s.Day], s)
	}

	var blocks []Block
	for _, day := range AllowedDays {
		daySlots := byDay[day]
		if len(daySlots) < groupSize {
			continue
		}
		sort.Slice(daySlots, func(i, j int) bool { return daySlots[i].Period < daySlots[j].Period })
		for i := 0; i+groupSize <= len(daySlots); i++ {
			window := daySlots[i : i+groupSize]
			block := Block{Day: day, Periods: make([]int, 0, groupSize), SlotIDs: make([]string, 0, groupSize)}
			for _, s := range window {
				block.Periods = append(block.Periods, s.Period)
				block.SlotIDs = append(block.SlotIDs, s.ID)
			}
			blocks = append(blocks, block)
		}
	}
	return blocks
}
