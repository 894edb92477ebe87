// Package template injects a serialized manifest into the worker script template.
package template

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ScriptRenderer = (*Renderer)(nil)

// Renderer implements ports.ScriptRenderer with literal placeholder substitution.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render reads the template, replaces its only placeholder with payload and atomically writes
// the result to outputPath. The output is left untouched on any failure.
func (r *Renderer) Render(templatePath, placeholder string, payload []byte, outputPath string) error {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return errors.Join(domain.ErrTemplateNotFound,
			zerr.With(zerr.Wrap(err, "failed to read template"), "template", templatePath))
	}

	if placeholder == "" {
		return errors.Join(domain.ErrTemplateMalformed,
			zerr.With(zerr.New("placeholder is empty"), "template", templatePath))
	}

	if n := bytes.Count(tmpl, []byte(placeholder)); n != 1 {
		err := zerr.With(zerr.New("unexpected placeholder count"), "template", templatePath)
		err = zerr.With(err, "placeholder", placeholder)
		return errors.Join(domain.ErrTemplateMalformed, zerr.With(err, "count", n))
	}

	rendered := bytes.Replace(tmpl, []byte(placeholder), payload, 1)

	if err := writeAtomic(outputPath, rendered); err != nil {
		return errors.Join(domain.ErrOutputWriteFailed,
			zerr.With(zerr.Wrap(err, "failed to write script"), "output", outputPath))
	}

	return nil
}

// writeAtomic writes data to a temporary sibling of path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}
