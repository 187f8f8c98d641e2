// Package web serves the matrix lookup over HTTP: server-rendered
// pages mirroring the interactive modes plus a read-only JSON API.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"matrixlens/internal/catalog"
	"matrixlens/internal/config"
)

//go:embed views
var viewsFS embed.FS

// Server wraps the Fiber app and its collaborators.
type Server struct {
	App    *fiber.App
	cfg    *config.Config
	cat    *catalog.Catalog
	logger *zap.Logger
}

// New creates the server with middleware and routes configured.
func New(cfg *config.Config, cat *catalog.Catalog, zlog *zap.Logger) *Server {
	if zlog == nil {
		zlog = zap.NewNop()
	}

	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		// Embedded tree is fixed at compile time.
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).Render("error", fiber.Map{
				"Title":   "Error",
				"Message": message,
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		cfg:    cfg,
		cat:    cat,
		logger: zlog,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.App.Get("/", s.Browse)
	s.App.Get("/course", s.CoursePage)
	s.App.Get("/outcome", s.OutcomePage)
	s.App.Get("/compare", s.ComparePage)
	s.App.Get("/export/course", s.ExportCourse)
	s.App.Get("/export/outcome", s.ExportOutcome)

	api := s.App.Group("/api/v1")
	api.Get("/versions", s.apiVersions)
	api.Get("/courses", s.apiCourses)
	api.Get("/outcomes", s.apiOutcomes)
	api.Get("/course/:name", s.apiCourse)
	api.Get("/outcome/:name", s.apiOutcome)
	api.Get("/compare/:course", s.apiCompare)

	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// Start serves on the configured address until the listener fails.
func (s *Server) Start() error {
	s.logger.Info("web server listening", zap.String("addr", s.cfg.Serve.Addr))
	return s.App.Listen(s.cfg.Serve.Addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
