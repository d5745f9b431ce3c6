package templater

import "context"

// Raw is the identity templater: the rendered text is the source.
type Raw struct{}

// Name implements Templater.
func (Raw) Name() string { return "raw" }

// Render implements Templater.
func (Raw) Render(_ context.Context, source, name string, _ map[string]any) (*TemplatedFile, error) {
	return Identity(name, source), nil
}
