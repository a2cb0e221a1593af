package subject

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/lalankumar17/Automated-Examination-Management-System/handlers"
	"github.com/lalankumar17/Automated-Examination-Management-System/services"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/response"
)

// SubjectHandler handles the subject catalog endpoints
type SubjectHandler struct {
	service *services.SubjectService
	policy  services.Policy
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(service *services.SubjectService, policy services.Policy) *SubjectHandler {
	return &SubjectHandler{service: service, policy: policy}
}

func (h *SubjectHandler) Register(r fiber.Router) {
	r.Get("/", h.ListSubjects)
	r.Get("/codes", h.ListCodes)
	r.Get("/filter", h.FilterSubjects)
	r.Get("/:name", h.GetSubject)
	r.Put("/:name", h.UpsertSubject)
	r.Delete("/:name", h.DeleteSubject)
}

// ListSubjects handles GET /io/subjects
func (h *SubjectHandler) ListSubjects(c *fiber.Ctx) error {
	subjects, err := h.service.List(c.UserContext(), services.Scope{})
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, subjects)
}

// ListCodes handles GET /io/subjects/codes
func (h *SubjectHandler) ListCodes(c *fiber.Ctx) error {
	codes, err := h.service.Codes(c.UserContext())
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, codes)
}

// FilterSubjects handles GET /io/subjects/filter?department=&semester=
func (h *SubjectHandler) FilterSubjects(c *fiber.Ctx) error {
	scope, err := handlers.ParseScope(c, h.policy)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}

	subjects, err := h.service.List(c.UserContext(), scope)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, subjects)
}

// GetSubject handles GET /io/subjects/:name
func (h *SubjectHandler) GetSubject(c *fiber.Ctx) error {
	subject, err := h.service.Get(c.UserContext(), subjectName(c))
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, subject)
}

// UpsertSubject handles PUT /io/subjects/:name
func (h *SubjectHandler) UpsertSubject(c *fiber.Ctx) error {
	var req services.UpsertSubjectRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return handlers.HandleServiceError(c, err)
	}

	subject, err := h.service.Upsert(c.UserContext(), subjectName(c), req)
	if err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Success(c, subject)
}

// DeleteSubject handles DELETE /io/subjects/:name
func (h *SubjectHandler) DeleteSubject(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), subjectName(c)); err != nil {
		return handlers.HandleServiceError(c, err)
	}
	return response.Message(c, "Subject deleted successfully")
}

// subjectName returns the decoded :name parameter; names may contain spaces
func subjectName(c *fiber.Ctx) string {
	name := c.Params("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}
