package controllers

import (
	"log"
	"time"

	"ems/models"
	"ems/utils"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CandidateController struct {
	DB     *gorm.DB
	logger *log.Logger
}

func NewCandidateController(db *gorm.DB, logger *log.Logger) *CandidateController {
	return &CandidateController{DB: db, logger: logger}
}

type CandidateDocumentRequest struct {
	Name                  string `json:"name" validate:"required,max=100"`
	Email                 string `json:"email" validate:"required,max=100"`
	JoiningDate           string `json:"joiningDate"`
	NdaFilePath           string `json:"ndaFilePath" validate:"omitempty,max=255"`
	UniIDFilePath         string `json:"uniIdFilePath" validate:"omitempty,max=255"`
	RequestLetterFilePath string `json:"requestLetterFilePath" validate:"omitempty,max=255"`
}

// Upload records a candidate's document submission. The upload timestamp is
// always stamped server-side.
func (cc *CandidateController) Upload(c *fiber.Ctx) error {
	var req CandidateDocumentRequest
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

	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address",
		})
	}

	var joiningDate *time.Time
	if req.JoiningDate != "" {
		parsed, err := utils.ParseDate(req.JoiningDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		joiningDate = &parsed
	}

	doc := models.CandidateDocument{
		Name:                  req.Name,
		Email:                 req.Email,
		JoiningDate:           joiningDate,
		NdaFilePath:           req.NdaFilePath,
		UniIDFilePath:         req.UniIDFilePath,
		RequestLetterFilePath: req.RequestLetterFilePath,
		UploadedAt:            time.Now(),
	}

	if err := cc.DB.Create(&doc).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save candidate document",
		})
	}

	cc.logger.Printf("candidate document recorded for %s", doc.Email)
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (cc *CandidateController) List(c *fiber.Ctx) error {
	var docs []models.CandidateDocument
	if err := cc.DB.Find(&docs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list candidate documents",
		})
	}
	return c.JSON(docs)
}
