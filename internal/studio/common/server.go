package common

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
)

// NewApp creates a new Fiber app with the given template FS
func NewApp(templatesFS fs.FS, errorHandler fiber.ErrorHandler) *fiber.App {
	engine := html.NewFileSystem(http.FS(templatesFS), ".html")
	return fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
}

// SetupStaticFS mounts the embedded static directory under /static
func SetupStaticFS(app *fiber.App, staticFS embed.FS) {
	sub, _ := fs.Sub(staticFS, "static")
	app.Use("/static", filesystem.New(filesystem.Config{
		Root: http.FS(sub),
	}))
}

// StartServer finds an available port, prints the URL, optionally opens a browser, and starts listening
func StartServer(app *fiber.App, port *int, name string, openBrowser bool) error {
	available := FindAvailablePort(*port)
	if available != *port {
		fmt.Printf("⚠️  Port %d is in use, using port %d instead\n", *port, available)
		*port = available
	}

	url := fmt.Sprintf("http://localhost:%d", *port)
	fmt.Printf("🚀 %s starting on %s\n", name, url)

	if openBrowser {
		go OpenBrowser(url)
	}

	return app.Listen(fmt.Sprintf(":%d", *port))
}
