// Package schemas embeds the JSON Schemas for files the tool reads and writes.
package schemas

import "embed"

// Schema file names.
const (
	GeneratedContent = "generated_content.schema.json"
	Projects         = "projects.schema.json"
	Styles           = "styles.schema.json"
	Typography       = "typography.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of a schema file.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
