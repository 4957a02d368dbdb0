package controllers

import (
	"errors"
	"fmt"
	"log"

	"ems/models"
	"ems/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TeamController struct {
	DB     *gorm.DB
	logger *log.Logger
}

func NewTeamController(db *gorm.DB, logger *log.Logger) *TeamController {
	return &TeamController{DB: db, logger: logger}
}

type TeamCreateRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	TeamLeadID *uint  `json:"teamLeadId"`
	MemberIDs  []uint `json:"memberIds"`
}

// TeamView is the denormalized team shape the frontend tables consume.
type TeamView struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	TeamLead      string   `json:"teamLead,omitempty"`
	Members       []string `json:"members"`
	AssignedTasks []string `json:"assignedTasks,omitempty"`
}

// Create persists a team and notifies each member of the assignment. One
// member's dispatch failure is logged and does not roll back the team or
// stop the remaining notifications.
func (tmc *TeamController) Create(c *fiber.Ctx) error {
	var req TeamCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if req.TeamLeadID != nil {
		var lead models.Employee
		if err := tmc.DB.First(&lead, *req.TeamLeadID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Team lead not found",
			})
		}
	}

	var members []models.Employee
	if len(req.MemberIDs) > 0 {
		if err := tmc.DB.Find(&members, req.MemberIDs).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load members",
			})
		}
		if len(members) != len(req.MemberIDs) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "One or more member employees not found",
			})
		}
	}

	team := models.Team{
		Name:       req.Name,
		TeamLeadID: req.TeamLeadID,
		Members:    members,
	}

	if err := tmc.DB.Create(&team).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create team",
		})
	}

	message := fmt.Sprintf("You have been assigned to team: %s", team.Name)
	for _, member := range team.Members {
		if _, err := utils.SendNotification(tmc.DB, member.EmpID, nil, models.NotifyAssigned, message); err != nil {
			tmc.logger.Printf("failed to notify member %d for team %d: %v", member.EmpID, team.ID, err)
			sentry.CaptureException(err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(team)
}

func (tmc *TeamController) List(c *fiber.Ctx) error {
	var teams []models.Team
	if err := tmc.DB.Preload("TeamLead").Preload("Members").Find(&teams).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list teams",
		})
	}
	return c.JSON(teams)
}

func (tmc *TeamController) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team id",
		})
	}

	var team models.Team
	if err := tmc.DB.Preload("TeamLead").Preload("Members").First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Team not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load team",
		})
	}
	return c.JSON(team)
}

// ViewAll joins every team with its lead, member names and currently linked
// task names.
func (tmc *TeamController) ViewAll(c *fiber.Ctx) error {
	var teams []models.Team
	if err := tmc.DB.Preload("TeamLead").Preload("Members").Find(&teams).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list teams",
		})
	}

	views := make([]TeamView, 0, len(teams))
	for i := range teams {
		view, err := tmc.buildView(&teams[i])
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to build team view",
			})
		}
		views = append(views, *view)
	}
	return c.JSON(views)
}

// TeamsForEmployee lists every team whose member set contains the employee.
func (tmc *TeamController) TeamsForEmployee(c *fiber.Ctx) error {
	empID, err := c.ParamsInt("empId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	var employee models.Employee
	if err := tmc.DB.First(&employee, empID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	teams, err := tmc.teamsContaining(employee.EmpID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list teams",
		})
	}
	return c.JSON(teams)
}

// ViewsForEmployee returns the denormalized view of every team the employee
// belongs to.
func (tmc *TeamController) ViewsForEmployee(c *fiber.Ctx) error {
	empID, err := c.ParamsInt("empId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee id",
		})
	}

	var employee models.Employee
	if err := tmc.DB.First(&employee, empID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Employee not found",
		})
	}

	teams, err := tmc.teamsContaining(employee.EmpID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list teams",
		})
	}

	views := make([]TeamView, 0, len(teams))
	for i := range teams {
		view, err := tmc.buildView(&teams[i])
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to build team view",
			})
		}
		views = append(views, *view)
	}
	return c.JSON(views)
}

func (tmc *TeamController) teamsContaining(empID uint) ([]models.Team, error) {
	var teams []models.Team
	err := tmc.DB.Preload("TeamLead").Preload("Members").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.employee_emp_id = ?", empID).
		Find(&teams).Error
	return teams, err
}

func (tmc *TeamController) buildView(team *models.Team) (*TeamView, error) {
	view := TeamView{
		ID:      team.ID,
		Name:    team.Name,
		Members: make([]string, 0, len(team.Members)),
	}
	if team.TeamLead != nil {
		view.TeamLead = team.TeamLead.FullName()
	}
	for i := range team.Members {
		view.Members = append(view.Members, team.Members[i].FullName())
	}

	var tasks []models.Task
	if err := tmc.DB.Where("team_id = ?", team.ID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	for _, task := range tasks {
		view.AssignedTasks = append(view.AssignedTasks, task.Name)
	}
	return &view, nil
}
