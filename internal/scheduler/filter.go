package scheduler

// Forbidden reports whether a room may never host a course: either the
// expected enrollment exceeds capacity, or the course needs a lab and the
// room is not one.
func Forbidden(course Course, room Room) bool {
	if course.ExpectedEnrollment > room.Capacity {
		return true
	}
	if course.NeedsLab && room.Type != RoomTypeLab {
		return true
	}
	return false
}

// EligibleRooms returns the rooms a course may legally use, preserving the
// input order.
func EligibleRooms(course Course, rooms []Room) []Room {
	eligible := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if !Forbidden(course, room) {
			eligible = append(eligible, room)
		}
	}
	return eligible
}
