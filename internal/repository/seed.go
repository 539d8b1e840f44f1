package repository

import "github.com/noah-isme/school-erp-api/internal/models"

// Demo records loaded into a fresh memory store. The Postgres backend loads
// the same rows from the seed migration.

func seedAdmins() []models.User {
	return []models.User{
		{ID: "admin01", Name: "Dr. Evelyn Reed", Email: "e.reed@university.edu", Role: models.RoleAdmin, AvatarURL: models.AvatarURLFor("avatar1")},
	}
}

func seedTeachers() []models.User {
	return []models.User{
		{ID: "prof001", Name: "Prof. Alan Turing", Email: "a.turing@university.edu", Role: models.RoleTeacher, Department: "Computer Science", AvatarURL: models.AvatarURLFor("avatar2")},
		{ID: "prof002", Name: "Prof. Marie Curie", Email: "m.curie@university.edu", Role: models.RoleTeacher, Department: "Physics", AvatarURL: models.AvatarURLFor("avatar3")},
	}
}

func seedStudents() []models.User {
	return []models.User{
		{ID: "stu001", Name: "Alice Johnson", Email: "alice.j@university.edu", Role: models.RoleStudent, Course: "Computer Science", Year: 2, Section: "A", AvatarURL: models.AvatarURLFor("avatar4")},
		{ID: "stu002", Name: "Bob Williams", Email: "bob.w@university.edu", Role: models.RoleStudent, Course: "Physics", Year: 3, Section: "B", AvatarURL: models.AvatarURLFor("avatar5")},
		{ID: "stu003", Name: "Charlie Brown", Email: "charlie.b@university.edu", Role: models.RoleStudent, Course: "Mathematics", Year: 1, Section: "A", AvatarURL: models.AvatarURLFor("avatar6")},
		{ID: "stu004", Name: "Diana Miller", Email: "diana.m@university.edu", Role: models.RoleStudent, Course: "Computer Science", Year: 4, Section: "C", AvatarURL: models.AvatarURLFor("avatar7")},
		{ID: "stu005", Name: "Ethan Davis", Email: "ethan.d@university.edu", Role: models.RoleStudent, Course: "Chemistry", Year: 2, Section: "B", AvatarURL: models.AvatarURLFor("avatar8")},
	}
}

func seedNotes() []models.Note {
	return []models.Note{
		{ID: 1, Title: "Chapter 1: Introduction to Algorithms", Type: models.NoteTypeNotes, Subject: "Computer Science", Date: "2024-07-10", Class: "Computer Science", Section: "A"},
		{ID: 2, Title: "Quantum Mechanics Problem Set", Type: models.NoteTypeHomework, Subject: "Physics", Date: "2024-07-12", Class: "Physics", Section: "B"},
		{ID: 3, Title: "Calculus II Review Sheet", Type: models.NoteTypeNotes, Subject: "Mathematics", Date: "2024-07-15", Class: "Mathematics", Section: "A"},
		{ID: 4, Title: "Lab Report: Titration Experiment", Type: models.NoteTypeHomework, Subject: "Chemistry", Date: "2024-07-18", Class: "Chemistry", Section: "B"},
	}
}

func seedAttendance() map[string]models.AttendanceStatus {
	return map[string]models.AttendanceStatus{
		"2024-07-01": models.AttendancePresent, "2024-07-02": models.AttendancePresent, "2024-07-03": models.AttendanceAbsent,
		"2024-07-04": models.AttendancePresent, "2024-07-05": models.AttendancePresent, "2024-07-06": models.AttendanceHoliday,
		"2024-07-07": models.AttendanceHoliday, "2024-07-08": models.AttendancePresent, "2024-07-09": models.AttendancePresent,
		"2024-07-10": models.AttendancePresent, "2024-07-11": models.AttendanceAbsent, "2024-07-12": models.AttendancePresent,
		"2024-07-15": models.AttendancePresent, "2024-07-16": models.AttendancePresent,
	}
}

func seedFees() models.FeeSchedule {
	paidOn := "2024-07-15"
	return models.FeeSchedule{
		TotalFees: 5000,
		PaidFees:  2500,
		Installments: []models.FeeInstallment{
			{ID: 1, Amount: 2500, DueDate: "2024-08-01", Status: models.InstallmentPaid, PaymentDate: &paidOn},
			{ID: 2, Amount: 2500, DueDate: "2025-01-15", Status: models.InstallmentUpcoming},
		},
	}
}

func seedHostels() []models.Hostel {
	return []models.Hostel{
		{Name: "Stanza Living", Occupancy: 180, Capacity: 200},
		{Name: "Orion Hostel", Occupancy: 120, Capacity: 150},
		{Name: "Taurus Hostel", Occupancy: 95, Capacity: 100},
	}
}

func seedResults() []models.SubjectResult {
	return []models.SubjectResult{
		{Subject: "Data Structures", Grade: "A", Marks: 92, Credits: 4},
		{Subject: "Quantum Physics", Grade: "B+", Marks: 88, Credits: 3},
		{Subject: "Linear Algebra", Grade: "A-", Marks: 90, Credits: 3},
		{Subject: "Organic Chemistry", Grade: "B", Marks: 82, Credits: 4},
		{Subject: "Software Engineering", Grade: "C+", Marks: 78, Credits: 3},
	}
}
