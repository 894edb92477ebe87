package ports

// ScriptRenderer injects a serialized manifest into the worker script template.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type ScriptRenderer interface {
	// Render replaces the single placeholder in the template at templatePath with payload
	// and writes the result to outputPath. Nothing is written on failure.
	Render(templatePath, placeholder string, payload []byte, outputPath string) error
}
