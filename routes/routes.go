package routes

import (
	"log"
	"os"

	"ems/controllers"
	"ems/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authController := controllers.NewAuthController(db, log.New(os.Stdout, "AUTH: ", log.LstdFlags))
	employeeController := controllers.NewEmployeeController(db, log.New(os.Stdout, "EMPLOYEE: ", log.LstdFlags))
	taskController := controllers.NewTaskController(db, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	teamController := controllers.NewTeamController(db, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	timesheetController := controllers.NewTimesheetController(db, log.New(os.Stdout, "TIMESHEET: ", log.LstdFlags))
	attendanceController := controllers.NewAttendanceController(db, log.New(os.Stdout, "ATTENDANCE: ", log.LstdFlags))
	leaveController := controllers.NewLeaveController(db, log.New(os.Stdout, "LEAVE: ", log.LstdFlags))
	notificationController := controllers.NewNotificationController(db, log.New(os.Stdout, "NOTIFY: ", log.LstdFlags))
	candidateController := controllers.NewCandidateController(db, log.New(os.Stdout, "CANDIDATE: ", log.LstdFlags))

	// Public auth endpoints
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	auth.Post("/login", middleware.LoginRateLimiter(), authController.Login)
	auth.Post("/logout", authController.Logout)

	// Protected API
	api := app.Group("/api", middleware.Protected(db), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	employee := api.Group("/employee")
	employee.Post("/add", employeeController.Create)
	employee.Get("/employees", employeeController.List)
	employee.Get("/:id", employeeController.Get)
	employee.Put("/update/:id", employeeController.Update)
	employee.Delete("/delete/:id", employeeController.Delete)

	task := api.Group("/task")
	task.Post("/add", taskController.Create)
	task.Get("/tasks", taskController.List)
	task.Get("/employee/:empId", taskController.ListForEmployee)
	task.Put("/update/:id", taskController.Update)
	task.Put("/team-lead-task/:taskId", taskController.TeamLeadRespond)

	team := api.Group("/team")
	team.Post("/create", teamController.Create)
	team.Get("/teams", teamController.List)
	team.Get("/team-dto", teamController.ViewAll)
	team.Put("/:taskId/assign-team/:teamId", taskController.AssignTeam)
	team.Get("/employee/:empId/teams", teamController.ViewsForEmployee)
	team.Get("/employee/:empId", teamController.TeamsForEmployee)
	team.Get("/:id", teamController.Get)

	timesheet := api.Group("/timesheet")
	timesheet.Post("/add", timesheetController.Create)
	timesheet.Get("/timesheets", timesheetController.List)
	timesheet.Put("/update/:id", timesheetController.Amend)
	timesheet.Get("/get-id/:empId/:date", timesheetController.LookupID)

	attendance := api.Group("/attendance")
	attendance.Post("/add", attendanceController.Save)
	attendance.Get("/all", attendanceController.List)
	attendance.Get("/date/:date", attendanceController.ByDate)
	attendance.Put("/update/:attId", attendanceController.Update)
	attendance.Put("/logout/:empId", attendanceController.Logout)

	leave := api.Group("/leave")
	leave.Post("/add", leaveController.Create)
	leave.Get("/leaves", leaveController.List)
	leave.Get("/status/:status", leaveController.ByStatus)
	leave.Put("/update/:id", leaveController.UpdateStatus)

	candidate := api.Group("/candidate")
	candidate.Post("/upload", candidateController.Upload)
	candidate.Get("/candidates", candidateController.List)

	notification := api.Group("/notification")
	notification.Post("/send", notificationController.Send)
	notification.Get("/employee/:empId", notificationController.ListForRecipient)
	notification.Put("/mark-read/:empId", notificationController.MarkAllRead)

	// Live unread-notification feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/notifications", websocket.New(notificationController.Feed))
}
