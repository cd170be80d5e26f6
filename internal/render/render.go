package render

import (
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var embedFS embed.FS
var embedTemplate *template.Template
var templateDir string
var globalVars map[string]interface{}

// Initialize parses the embedded templates and remembers the optional
// override directory. Templates found on disk take precedence at render time.
func Initialize(gVars map[string]interface{}, tmplDir string) error {
	globalVars = gVars
	if tmplDir != "" {
		info, err := os.Stat(tmplDir)
		if err != nil {
			return fmt.Errorf("template directory does not exist: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("template path is not a directory: %s", tmplDir)
		}
		templateDir = tmplDir
	}

	t, err := template.ParseFS(embedFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	embedTemplate = t
	return nil
}

func RenderHTML(templateName string, vars map[string]interface{}) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	mergedVars := make(map[string]interface{})
	for k, v := range globalVars {
		mergedVars[k] = v
	}
	for k, v := range vars {
		mergedVars[k] = v
	}

	if !strings.HasSuffix(templateName, ".html") {
		templateName += ".html"
	}

	// On-demand loading when a template directory is set
	if templateDir != "" {
		filePath := filepath.Join(templateDir, templateName)
		if contents, err := os.ReadFile(filePath); err == nil {
			if t, err := template.New(templateName).Parse(string(contents)); err == nil {
				if err := t.ExecuteTemplate(buf, templateName, mergedVars); err == nil {
					return buf.String(), nil
				}
			}
		}
		log.Printf("Render template %s failed, falling back to embedded", filePath)
	}

	// fallback to embedded templates
	if err := embedTemplate.ExecuteTemplate(buf, templateName, mergedVars); err != nil {
		return "", err
	}
	return buf.String(), nil
}
