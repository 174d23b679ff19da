package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

// LoadFromDirectory loads prompts into the global registry.
// Expected structure:
//
//	baseDir/
//	  prompts/
//	    advisory/
//	      strategy.json
func LoadFromDirectory(baseDir string) error {
	return Get().LoadDirectory(baseDir)
}

// LoadDirectory loads every .json file under baseDir/prompts.
func (r *Registry) LoadDirectory(baseDir string) error {
	promptDir := filepath.Join(baseDir, "prompts")
	if _, err := os.Stat(promptDir); os.IsNotExist(err) {
		return fmt.Errorf("prompts directory not found: %s", promptDir)
	}
	return r.LoadFS(os.DirFS(baseDir), "prompts")
}

// LoadFS loads every .json file under root in fsys. IDs and categories that
// a file leaves empty are derived from its path relative to root.
func (r *Registry) LoadFS(fsys fs.FS, root string) error {
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".json" {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		var pt PromptTemplate
		if err := json.Unmarshal(data, &pt); err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if pt.ID == "" {
			pt.ID = generateIDFromPath(rel)
		}
		if pt.Category == "" {
			pt.Category = detectCategory(rel)
		}

		if err := r.Register(&pt); err != nil {
			return fmt.Errorf("failed to register %s: %w", pt.ID, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}
	return nil
}

// generateIDFromPath creates a prompt ID from a slash-separated relative path
// e.g., "advisory/strategy.json" -> "advisory.strategy"
func generateIDFromPath(rel string) string {
	return strings.ReplaceAll(strings.TrimSuffix(rel, ".json"), "/", ".")
}

func detectCategory(rel string) string {
	if parts := strings.Split(rel, "/"); len(parts) > 1 {
		return parts[0]
	}
	return "default"
}

// RenderUserPrompt executes the user prompt template with the given context.
// Declared variables with a default are filled in when the context omits them;
// a missing required variable is an error.
func RenderUserPrompt(pt *PromptTemplate, ctx *PromptExecutionContext) (string, error) {
	if pt.UserPromptTmpl == "" {
		return "", nil
	}

	vars := make(map[string]interface{}, len(ctx.Variables))
	for k, v := range ctx.Variables {
		vars[k] = v
	}
	for _, v := range pt.Variables {
		if _, ok := vars[v.Name]; ok {
			continue
		}
		if v.Required {
			return "", fmt.Errorf("missing required variable %q for prompt %s", v.Name, pt.ID)
		}
		vars[v.Name] = v.Default
	}

	tmpl, err := template.New(pt.ID).Option("missingkey=error").Parse(pt.UserPromptTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
