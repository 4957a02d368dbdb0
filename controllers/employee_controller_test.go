package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"ems/models"
)

func employeeBody(username, email string) map[string]any {
	return map[string]any{
		"username":    username,
		"password":    "secret123",
		"role":        "EMPLOYEE",
		"fname":       "Dana",
		"lname":       "Jayasuriya",
		"email":       email,
		"designation": "Analyst",
	}
}

func TestCreateEmployee(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, http.MethodPost, "/api/employee/add",
		employeeBody("dana", "dana@example.com"), env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}

	var emp models.Employee
	decodeBody(t, resp, &emp)
	if emp.EmpID == 0 || emp.Username != "dana" {
		t.Errorf("employee = %+v", emp)
	}
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, http.MethodPost, "/api/employee/add",
		employeeBody("dana", "alice@example.com"), env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status %d, want 409", resp.StatusCode)
	}
	if got := errorMessage(t, resp); got != "Email already in use." {
		t.Errorf("error = %q", got)
	}
}

func TestCreateEmployeeDuplicateUsername(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, http.MethodPost, "/api/employee/add",
		employeeBody("alice", "dana@example.com"), env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status %d, want 409", resp.StatusCode)
	}
	if got := errorMessage(t, resp); got != "Username already in use." {
		t.Errorf("error = %q", got)
	}
}

func TestCreateEmployeeInvalidEmail(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, http.MethodPost, "/api/employee/add",
		employeeBody("dana", "not-an-email"), env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	if got := errorMessage(t, resp); got != "Invalid email address" {
		t.Errorf("error = %q", got)
	}
}

func TestUpdateEmployeeEmailTakenByOther(t *testing.T) {
	env := setupEnv(t)

	body := employeeBody("alice", "bob@example.com")
	resp := env.request(t, http.MethodPut,
		fmt.Sprintf("/api/employee/update/%d", env.alice.EmpID), body, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status %d, want 409", resp.StatusCode)
	}

	// Re-submitting the employee's own email is not a conflict
	body = employeeBody("alice", "alice@example.com")
	body["designation"] = "Senior Engineer"
	resp = env.request(t, http.MethodPut,
		fmt.Sprintf("/api/employee/update/%d", env.alice.EmpID), body, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("own email update: status %d", resp.StatusCode)
	}
	var updated models.Employee
	env.db.First(&updated, env.alice.EmpID)
	if updated.Designation != "Senior Engineer" {
		t.Errorf("designation = %q", updated.Designation)
	}
}

func TestUpdateEmployeeUsernameTakenByOther(t *testing.T) {
	env := setupEnv(t)

	body := employeeBody("bob", "alice@example.com")
	resp := env.request(t, http.MethodPut,
		fmt.Sprintf("/api/employee/update/%d", env.alice.EmpID), body, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status %d, want 409", resp.StatusCode)
	}
	if got := errorMessage(t, resp); got != "Username already in use." {
		t.Errorf("error = %q", got)
	}

	var stored models.Employee
	env.db.First(&stored, env.alice.EmpID)
	if stored.Username != "alice" {
		t.Errorf("username = %q, want unchanged", stored.Username)
	}
}

func TestDeleteEmployee(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, http.MethodDelete,
		fmt.Sprintf("/api/employee/delete/%d", env.carol.EmpID), nil, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}

	resp = env.request(t, http.MethodGet,
		fmt.Sprintf("/api/employee/%d", env.carol.EmpID), nil, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", resp.StatusCode)
	}
}
