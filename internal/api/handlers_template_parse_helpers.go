package api

import (
	"fmt"
	"html/template"
	"path/filepath"
)

// parseLayout parses the files every page shares: the base layout, the
// section templates and the htmx partials.
func parseLayout(templateDir string, funcMap template.FuncMap) (*template.Template, error) {
	files := make([]string, 0, len(partialTemplateFiles)+2)
	files = append(files, filepath.Join(templateDir, "base.html"), filepath.Join(templateDir, sectionTemplateFile))
	for _, partial := range partialTemplateFiles {
		files = append(files, filepath.Join(templateDir, partial))
	}

	layout, err := template.New("base").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return layout, nil
}

// parsePageTemplates clones the layout once per page so each page can define
// its own "content". It must run before the layout is executed.
func parsePageTemplates(layout *template.Template, templateDir string, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", page, err)
		}
		if _, err := clone.ParseFiles(filepath.Join(templateDir, page+".html")); err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = clone
	}
	return templates, nil
}
