package api

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/response"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "exam-timetable",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			ErrorHandler: errorHandler,
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// Run listens until SIGINT/SIGTERM, then drains in-flight requests
func (s *APIServer) Run() error {
	log.Println("Starting API Server")
	log.Printf("Listening on %s", s.listenAddress)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.listenAddress)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("Received %s, shutting down API Server", sig)
		return s.app.ShutdownWithTimeout(10 * time.Second)
	}
}

// errorHandler renders errors that escape the handlers, such as unknown methods
func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return response.Error(c, e.Code, e.Message, "HTTP_ERROR")
	}
	log.Printf("[HTTP] unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, "")
}
