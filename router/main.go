package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lalankumar17/Automated-Examination-Management-System/database"
	"github.com/lalankumar17/Automated-Examination-Management-System/handlers"
	exam_handlers "github.com/lalankumar17/Automated-Examination-Management-System/handlers/exam"
	subject_handlers "github.com/lalankumar17/Automated-Examination-Management-System/handlers/subject"
	"github.com/lalankumar17/Automated-Examination-Management-System/services"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/response"
)

// Services bundles what the routes depend on
type Services struct {
	Store    database.Storage
	Exams    *services.ExamService
	Subjects *services.SubjectService
}

func SetupRoutes(app *fiber.App, svc Services) {
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, svc.Store))

	// Exam timetable
	examHandler := exam_handlers.NewExamHandler(svc.Exams)
	examHandler.Register(app.Group("/api/exams"))

	// Subject catalog
	subjectHandler := subject_handlers.NewSubjectHandler(svc.Subjects, svc.Exams.Policy())
	subjectHandler.Register(app.Group("/io/subjects"))

	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})
}
