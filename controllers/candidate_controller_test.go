package controllers_test

import (
	"net/http"
	"testing"

	"ems/models"
)

func TestCandidateDocumentUpload(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, http.MethodPost, "/api/candidate/upload", map[string]any{
		"name":                  "Nimal Perera",
		"email":                 "nimal@example.com",
		"joiningDate":           "2026-10-01",
		"ndaFilePath":           "/docs/nimal/nda.pdf",
		"uniIdFilePath":         "/docs/nimal/uni-id.pdf",
		"requestLetterFilePath": "/docs/nimal/request.pdf",
	}, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload: status %d", resp.StatusCode)
	}

	var doc models.CandidateDocument
	decodeBody(t, resp, &doc)
	if doc.ID == 0 || doc.Name != "Nimal Perera" {
		t.Errorf("document = %+v", doc)
	}
	if doc.JoiningDate == nil || doc.JoiningDate.Format("2006-01-02") != "2026-10-01" {
		t.Errorf("joiningDate = %v", doc.JoiningDate)
	}
	if doc.UploadedAt.IsZero() {
		t.Errorf("uploadedAt was not stamped")
	}
	if doc.NdaFilePath != "/docs/nimal/nda.pdf" {
		t.Errorf("ndaFilePath = %q", doc.NdaFilePath)
	}
}

func TestCandidateDocumentUploadInvalid(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, http.MethodPost, "/api/candidate/upload", map[string]any{
		"email": "nimal@example.com",
	}, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing name: status %d, want 400", resp.StatusCode)
	}

	resp = env.request(t, http.MethodPost, "/api/candidate/upload", map[string]any{
		"name":  "Nimal Perera",
		"email": "not-an-email",
	}, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad email: status %d, want 400", resp.StatusCode)
	}
	if got := errorMessage(t, resp); got != "Invalid email address" {
		t.Errorf("error = %q", got)
	}

	var count int64
	env.db.Model(&models.CandidateDocument{}).Count(&count)
	if count != 0 {
		t.Errorf("document count = %d, want 0", count)
	}
}

func TestCandidateDocumentList(t *testing.T) {
	env := setupEnv(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		resp := env.request(t, http.MethodPost, "/api/candidate/upload", map[string]any{
			"name":  "Candidate",
			"email": email,
		}, env.bearer(t, env.admin))
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("upload %s: status %d", email, resp.StatusCode)
		}
	}

	resp := env.request(t, http.MethodGet, "/api/candidate/candidates", nil, env.bearer(t, env.admin))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	var docs []models.CandidateDocument
	decodeBody(t, resp, &docs)
	if len(docs) != 2 {
		t.Errorf("documents = %d, want 2", len(docs))
	}
}
