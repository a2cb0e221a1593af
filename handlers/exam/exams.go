package exam

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lalankumar17/Automated-Examination-Management-System/handlers"
	"github.com/lalankumar17/Automated-Examination-Management-System/services"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/response"
)

// ExamHandler handles the exam timetable endpoints
type ExamHandler struct {
	service *services.ExamService
}

// NewExamHandler creates a new exam handler
func NewExamHandler(service *services.ExamService) *ExamHandler {
	return &ExamHandler{service: service}
}

// Register mounts the exam routes. Fixed paths come before /:id.
func (h *ExamHandler) Register(r fiber.Router) {
	r.Get("/", h.ListExams)
	r.Post("/", h.CreateExam)
	r.Get("/conflicts", h.CheckConflicts)
	r.Post("/auto-resolve", h.AutoResolve)
	r.Put("/publish", h.Publish)
	r.Get("/status", h.Status)
	r.Get("/departments", h.Departments)
	r.Get("/time-slots", h.TimeSlots)
	r.Get("/audit", h.AuditLogs)
	r.Get("/archives", h.Archives)
	r.Get("/:id", h.GetExam)
	r.Put("/:id", h.UpdateExam)
	r.Delete("/:id", h.DeleteExam)
}

// ListExams handles GET /api/exams
func (h *ExamHandler) ListExams(c *fiber.Ctx) error {
	scope, err := handlers.ParseScope(c, h.service.Policy())
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}

	exams, err := h.service.List(c.UserContext(), scope, c.Query("status"))
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, exams)
}

// GetExam handles GET /api/exams/:id
func (h *ExamHandler) GetExam(c *fiber.Ctx) error {
	exam, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, exam)
}

// CreateExam handles POST /api/exams
func (h *ExamHandler) CreateExam(c *fiber.Ctx) error {
	var req services.CreateExamRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return handlers.HandleServiceError(c, err)
	}

	exam, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Created(c, exam)
}

// UpdateExam handles PUT /api/exams/:id
func (h *ExamHandler) UpdateExam(c *fiber.Ctx) error {
	var req services.UpdateExamRequest
	if len(c.Body()) > 0 {
		if err := handlers.ParseBody(c, &req); err != nil {
			return handlers.HandleServiceError(c, err)
		}
	}

	exam, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, exam)
}

// DeleteExam handles DELETE /api/exams/:id
func (h *ExamHandler) DeleteExam(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Message(c, "Exam deleted successfully")
}

// CheckConflicts handles GET /api/exams/conflicts
func (h *ExamHandler) CheckConflicts(c *fiber.Ctx) error {
	scope, err := handlers.ParseScope(c, h.service.Policy())
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}

	report, err := h.service.Conflicts(c.UserContext(), scope)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, report)
}

// AutoResolve handles POST /api/exams/auto-resolve
func (h *ExamHandler) AutoResolve(c *fiber.Ctx) error {
	scope, err := handlers.ParseScope(c, h.service.Policy())
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}

	result, err := h.service.AutoResolve(c.UserContext(), scope)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, result)
}

// Publish handles PUT /api/exams/publish
func (h *ExamHandler) Publish(c *fiber.Ctx) error {
	scope, err := handlers.ParseScope(c, h.service.Policy())
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}

	result, err := h.service.Publish(c.UserContext(), scope)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, result)
}

// Status handles GET /api/exams/status
func (h *ExamHandler) Status(c *fiber.Ctx) error {
	status, err := h.service.Status(c.UserContext())
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, status)
}

// Departments handles GET /api/exams/departments
func (h *ExamHandler) Departments(c *fiber.Ctx) error {
	departments, err := h.service.Departments(c.UserContext())
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, departments)
}

// TimeSlots handles GET /api/exams/time-slots
func (h *ExamHandler) TimeSlots(c *fiber.Ctx) error {
	return response.Success(c, h.service.TimeSlots())
}

// AuditLogs handles GET /api/exams/audit
func (h *ExamHandler) AuditLogs(c *fiber.Ctx) error {
	scope, err := handlers.ParseScope(c, h.service.Policy())
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	entries, err := h.service.AuditLogs(c.UserContext(), scope, limit)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, entries)
}

// Archives handles GET /api/exams/archives
func (h *ExamHandler) Archives(c *fiber.Ctx) error {
	scope, err := handlers.ParseScope(c, h.service.Policy())
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}

	keys, err := h.service.Archives(c.UserContext(), scope)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, fiber.Map{"archives": keys})
}
