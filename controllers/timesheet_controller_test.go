package controllers_test

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"ems/models"
)

func createTimesheet(t *testing.T, env *testEnv, body map[string]any) models.Timesheet {
	t.Helper()
	resp := env.request(t, http.MethodPost, "/api/timesheet/add", body, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create timesheet: status %d", resp.StatusCode)
	}
	var ts models.Timesheet
	decodeBody(t, resp, &ts)
	return ts
}

func TestTimesheetCreateDuplicate(t *testing.T) {
	env := setupEnv(t)

	body := map[string]any{
		"empId":     env.alice.EmpID,
		"date":      "2025-03-10",
		"startTime": "09:00",
	}
	createTimesheet(t, env, body)

	resp := env.request(t, http.MethodPost, "/api/timesheet/add", body, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate create: status %d, want 409", resp.StatusCode)
	}

	var count int64
	env.db.Model(&models.Timesheet{}).Count(&count)
	if count != 1 {
		t.Errorf("timesheet count = %d, want 1", count)
	}
}

func TestTimesheetAmendWriteOncePunch(t *testing.T) {
	env := setupEnv(t)

	ts := createTimesheet(t, env, map[string]any{
		"empId":        env.alice.EmpID,
		"date":         "2025-03-10",
		"startTime":    "09:00",
		"lunchOutTime": "12:00",
	})

	path := "/api/timesheet/update/" + strconv.Itoa(int(ts.TimesheetID))

	resp := env.request(t, http.MethodPut, path, map[string]any{
		"lunchOutTime": "12:15",
	}, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("conflicting amend: status %d, want 400", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); !strings.Contains(msg, "Lunch out time cannot be updated again.") {
		t.Errorf("error = %q, want lunch-out conflict message", msg)
	}

	var stored models.Timesheet
	env.db.First(&stored, ts.TimesheetID)
	if stored.LunchOutTime == nil || *stored.LunchOutTime != "12:00" {
		t.Errorf("lunchOutTime was overwritten: %v", stored.LunchOutTime)
	}
}

func TestTimesheetAmendAggregatesConflictsAtomically(t *testing.T) {
	env := setupEnv(t)

	ts := createTimesheet(t, env, map[string]any{
		"empId":        env.alice.EmpID,
		"date":         "2025-03-10",
		"startTime":    "09:00",
		"lunchOutTime": "12:00",
	})

	path := "/api/timesheet/update/" + strconv.Itoa(int(ts.TimesheetID))

	// Two conflicting punches and one fresh punch: everything must be
	// rejected and the fresh punch must not be written.
	resp := env.request(t, http.MethodPut, path, map[string]any{
		"startTime":    "08:00",
		"lunchOutTime": "12:30",
		"endTime":      "17:00",
	}, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("amend: status %d, want 400", resp.StatusCode)
	}

	msg := errorMessage(t, resp)
	if !strings.Contains(msg, "Start time cannot be updated again.") {
		t.Errorf("error %q missing start-time conflict", msg)
	}
	if !strings.Contains(msg, "Lunch out time cannot be updated again.") {
		t.Errorf("error %q missing lunch-out conflict", msg)
	}

	var stored models.Timesheet
	env.db.First(&stored, ts.TimesheetID)
	if stored.EndTime != nil {
		t.Errorf("endTime written despite conflicts: %v", *stored.EndTime)
	}
	if *stored.StartTime != "09:00" {
		t.Errorf("startTime overwritten: %v", *stored.StartTime)
	}
}

func TestTimesheetAmendRecomputesWorkHours(t *testing.T) {
	env := setupEnv(t)

	ts := createTimesheet(t, env, map[string]any{
		"empId":     env.alice.EmpID,
		"date":      "2025-03-10",
		"startTime": "09:00",
	})

	path := "/api/timesheet/update/" + strconv.Itoa(int(ts.TimesheetID))

	resp := env.request(t, http.MethodPut, path, map[string]any{
		"lunchOutTime": "12:00",
		"lunchInTime":  "12:30",
	}, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("amend punches: status %d", resp.StatusCode)
	}
	var afterLunch models.Timesheet
	decodeBody(t, resp, &afterLunch)
	if afterLunch.WorkHours != "" {
		t.Errorf("workHours computed without end time: %q", afterLunch.WorkHours)
	}

	resp = env.request(t, http.MethodPut, path, map[string]any{
		"endTime": "17:30",
	}, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("amend end time: status %d", resp.StatusCode)
	}
	var final models.Timesheet
	decodeBody(t, resp, &final)
	if final.WorkHours != "08:00" {
		t.Errorf("workHours = %q, want 08:00", final.WorkHours)
	}
}

func TestTimesheetLookupID(t *testing.T) {
	env := setupEnv(t)

	ts := createTimesheet(t, env, map[string]any{
		"empId": env.alice.EmpID,
		"date":  "2025-03-10",
	})

	path := "/api/timesheet/get-id/" + strconv.Itoa(int(env.alice.EmpID)) + "/2025-03-10"
	resp := env.request(t, http.MethodGet, path, nil, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lookup: status %d", resp.StatusCode)
	}
	var id uint
	decodeBody(t, resp, &id)
	if id != ts.TimesheetID {
		t.Errorf("lookup id = %d, want %d", id, ts.TimesheetID)
	}

	missing := "/api/timesheet/get-id/" + strconv.Itoa(int(env.alice.EmpID)) + "/2025-03-11"
	resp = env.request(t, http.MethodGet, missing, nil, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("lookup missing: status %d, want 404", resp.StatusCode)
	}
}

func TestTimesheetWorkSummaryStaysUpdatable(t *testing.T) {
	env := setupEnv(t)

	ts := createTimesheet(t, env, map[string]any{
		"empId":       env.alice.EmpID,
		"date":        "2025-03-10",
		"workSummary": "morning standup",
	})

	path := "/api/timesheet/update/" + strconv.Itoa(int(ts.TimesheetID))
	resp := env.request(t, http.MethodPut, path, map[string]any{
		"workSummary": "standup and code review",
	}, env.bearer(t, env.alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("amend summary: status %d", resp.StatusCode)
	}

	var stored models.Timesheet
	env.db.First(&stored, ts.TimesheetID)
	if stored.WorkSummary != "standup and code review" {
		t.Errorf("workSummary = %q", stored.WorkSummary)
	}
}
