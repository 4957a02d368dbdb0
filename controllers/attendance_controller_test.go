package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"ems/models"
)

func markAttendance(t *testing.T, env *testEnv, body map[string]any) models.Attendance {
	t.Helper()
	resp := env.request(t, http.MethodPost, "/api/attendance/add", body, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("mark attendance: status %d", resp.StatusCode)
	}
	var att models.Attendance
	decodeBody(t, resp, &att)
	return att
}

func TestAttendanceDuplicateRejected(t *testing.T) {
	env := setupEnv(t)

	markAttendance(t, env, map[string]any{
		"empId":  env.alice.EmpID,
		"status": "PRESENT",
	})

	resp := env.request(t, http.MethodPost, "/api/attendance/add", map[string]any{
		"empId":  env.alice.EmpID,
		"status": "PRESENT",
	}, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	if got := errorMessage(t, resp); got != "Attendance already marked for today." {
		t.Errorf("error = %q", got)
	}

	var count int64
	env.db.Model(&models.Attendance{}).Where("emp_id = ?", env.alice.EmpID).Count(&count)
	if count != 1 {
		t.Errorf("attendance count = %d, want 1", count)
	}
}

func TestAttendanceAbsentClearsTimes(t *testing.T) {
	env := setupEnv(t)

	now := time.Now().UTC()
	att := markAttendance(t, env, map[string]any{
		"empId":        env.bob.EmpID,
		"status":       "ABSENT",
		"loggedInTime": now,
	})
	if att.LoggedInTime != nil || att.LoggedOutTime != nil {
		t.Errorf("absent record carries logged times: %+v", att)
	}
}

func TestAttendanceUpdateToAbsentWipesTimes(t *testing.T) {
	env := setupEnv(t)

	now := time.Now().UTC()
	att := markAttendance(t, env, map[string]any{
		"empId":        env.carol.EmpID,
		"status":       "PRESENT",
		"loggedInTime": now,
	})
	if att.LoggedInTime == nil {
		t.Fatalf("present record lost its logged-in time")
	}

	later := now.Add(time.Hour)
	resp := env.request(t, http.MethodPut,
		fmt.Sprintf("/api/attendance/update/%d", att.AttID), map[string]any{
			"status":        "ABSENT",
			"loggedInTime":  later,
			"loggedOutTime": later,
		}, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status %d", resp.StatusCode)
	}

	var updated models.Attendance
	env.db.First(&updated, att.AttID)
	if updated.Status != models.AttendanceAbsent {
		t.Errorf("status = %s, want ABSENT", updated.Status)
	}
	if updated.LoggedInTime != nil || updated.LoggedOutTime != nil {
		t.Errorf("absent record still carries times: %+v", updated)
	}

	// Times supplied while ABSENT are ignored outright
	resp = env.request(t, http.MethodPut,
		fmt.Sprintf("/api/attendance/update/%d", att.AttID), map[string]any{
			"loggedInTime": later,
		}, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second update: status %d", resp.StatusCode)
	}
	env.db.First(&updated, att.AttID)
	if updated.LoggedInTime != nil {
		t.Errorf("logged-in time set while absent: %v", updated.LoggedInTime)
	}
}

func TestAttendanceLogout(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, http.MethodPut,
		fmt.Sprintf("/api/attendance/logout/%d", env.alice.EmpID), nil, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("logout without attendance: status %d, want 400", resp.StatusCode)
	}
	if got := errorMessage(t, resp); got != "No attendance found for today." {
		t.Errorf("error = %q", got)
	}

	markAttendance(t, env, map[string]any{
		"empId":  env.alice.EmpID,
		"status": "PRESENT",
	})

	resp = env.request(t, http.MethodPut,
		fmt.Sprintf("/api/attendance/logout/%d", env.alice.EmpID), nil, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}
	var att models.Attendance
	decodeBody(t, resp, &att)
	if att.LoggedOutTime == nil {
		t.Fatalf("logout did not stamp logged-out time")
	}

	resp = env.request(t, http.MethodPut,
		fmt.Sprintf("/api/attendance/logout/%d", env.alice.EmpID), nil, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("second logout: status %d, want 400", resp.StatusCode)
	}
	if got := errorMessage(t, resp); got != "Logout time already recorded for today." {
		t.Errorf("error = %q", got)
	}
}

func TestAttendanceListIncludesEmployeeDetails(t *testing.T) {
	env := setupEnv(t)

	markAttendance(t, env, map[string]any{
		"empId":  env.bob.EmpID,
		"status": "PRESENT",
	})

	resp := env.request(t, http.MethodGet, "/api/attendance/all", nil, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	var rows []map[string]any
	decodeBody(t, resp, &rows)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0]["fname"] != "Bob" || rows[0]["lname"] != "Perera" {
		t.Errorf("row = %+v, want Bob Perera", rows[0])
	}
	if rows[0]["date"] != today() {
		t.Errorf("date = %v, want %s", rows[0]["date"], today())
	}
}
