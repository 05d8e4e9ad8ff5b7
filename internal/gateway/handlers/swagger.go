package handlers

import (
	_ "embed"
	"fmt"
	"html"
	"os"

	"github.com/gofiber/fiber/v3"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIDoc []byte

// ============================================================
// Swagger Handlers
// ============================================================

// Docs serves the OpenAPI document and a Swagger UI page over it.
type Docs struct {
	spec  []byte
	title string
}

// NewDocs loads the OpenAPI document at path, or the embedded one when path
// is empty. The document must parse as YAML with an info.title.
func NewDocs(path string) (*Docs, error) {
	data := openAPIDoc
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read api document: %w", err)
		}
	}

	var doc struct {
		OpenAPI string `yaml:"openapi"`
		Info    struct {
			Title string `yaml:"title"`
		} `yaml:"info"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse api document: %w", err)
	}
	if doc.OpenAPI == "" || doc.Info.Title == "" {
		return nil, fmt.Errorf("api document needs openapi and info.title")
	}
	return &Docs{spec: data, title: doc.Info.Title}, nil
}

// Spec serves the OpenAPI YAML.
func (d *Docs) Spec(c fiber.Ctx) error {
	c.Type("yaml")
	return c.Send(d.spec)
}

// UI serves a Swagger UI page that loads specURL.
func (d *Docs) UI(specURL string) fiber.Handler {
	page := fmt.Sprintf(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({url: %q, dom_id: '#swagger-ui', deepLinking: true});
  };
</script>
</body>
</html>`, html.EscapeString(d.title), specURL)

	return func(c fiber.Ctx) error {
		c.Type("html")
		return c.SendString(page)
	}
}
