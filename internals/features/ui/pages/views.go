package pages

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewEngine: template engine dari file yang di-embed ke binary.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		log.Fatalf("[ERROR] views fs: %v", err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
