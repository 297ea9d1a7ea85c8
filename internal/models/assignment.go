package models

import "time"

// AssignmentStatusAuto marks scheduler-generated rows. Rows with any other
// status were edited or locked by humans and survive every auto re-run.
const AssignmentStatusAuto = "auto"

// Assignment is one persisted (course, room, timeslot) cell of a timetable.
type Assignment struct {
	ID         string    `db:"id" json:"id"`
	TenantID   string    `db:"tenant_id" json:"tenant_id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	RoomID     string    `db:"room_id" json:"room_id"`
	TimeslotID string    `db:"timeslot_id" json:"timeslot_id"`
	Status     string    `db:"status" json:"status"`
	Reason     string    `db:"reason" json:"reason"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AssignmentView joins an assignment with its catalog labels for read APIs.
type AssignmentView struct {
	CourseID   string `db:"course_id" json:"course_id"`
	CourseCode string `db:"course_code" json:"course_code"`
	CourseName string `db:"course_name" json:"course_name"`
	RoomID     string `db:"room_id" json:"room_id"`
	RoomName   string `db:"room_name" json:"room_name"`
	TimeslotID string `db:"timeslot_id" json:"timeslot_id"`
	Day        string `db:"day" json:"day"`
	StartTime  string `db:"start_time" json:"start_time"`
	EndTime    string `db:"end_time" json:"end_time"`
	Status     string `db:"status" json:"status"`
	Reason     string `db:"reason" json:"reason"`
}
