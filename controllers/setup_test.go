package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ems/config"
	"ems/models"
	"ems/routes"
	"ems/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB

	admin models.Employee
	alice models.Employee
	bob   models.Employee
	carol models.Employee
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	config.AppConfig = config.Config{
		Environment:      "test",
		JWTSecret:        "test-secret",
		JWTExpiration:    time.Hour,
		ReminderZone:     "UTC",
		ReminderInterval: 4 * time.Hour,
		RateLimitLogin:   100,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	app := fiber.New()
	routes.SetupRoutes(app, db)

	env := &testEnv{app: app, db: db}

	env.admin = models.Employee{
		Username: "admin", Password: "admin123", Role: models.RoleAdmin,
		Fname: "Ada", Lname: "Admin", Email: "admin@example.com", Designation: "Manager",
	}
	env.alice = models.Employee{
		Username: "alice", Password: "alice123", Role: models.RoleEmployee,
		Fname: "Alice", Lname: "Silva", Email: "alice@example.com", Designation: "Engineer",
	}
	env.bob = models.Employee{
		Username: "bob", Password: "bob123", Role: models.RoleEmployee,
		Fname: "Bob", Lname: "Perera", Email: "bob@example.com", Designation: "Engineer",
	}
	env.carol = models.Employee{
		Username: "carol", Password: "carol123", Role: models.RoleEmployee,
		Fname: "Carol", Lname: "Fernando", Email: "carol@example.com", Designation: "Designer",
	}

	for _, emp := range []*models.Employee{&env.admin, &env.alice, &env.bob, &env.carol} {
		if err := db.Create(emp).Error; err != nil {
			t.Fatalf("seed employee %s: %v", emp.Username, err)
		}
	}

	return env
}

func (env *testEnv) bearer(t *testing.T, emp models.Employee) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(&emp)
	if err != nil {
		t.Fatalf("generate jwt: %v", err)
	}
	return "Bearer " + token
}

func (env *testEnv) request(t *testing.T, method, path string, body any, auth string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, resp, &body)
	return body["error"]
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
