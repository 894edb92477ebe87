package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/precache/internal/adapters/config"
	"go.trai.ch/precache/internal/adapters/fs"
	"go.trai.ch/precache/internal/adapters/telemetry"
	"go.trai.ch/precache/internal/adapters/template"
	"go.trai.ch/precache/internal/app"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports/mocks"
	"go.trai.ch/precache/internal/engine/manifest"
	"go.uber.org/mock/gomock"
)

// newProvider builds the real pipeline around a mocked logger.
func newProvider(t *testing.T) (ComponentProvider, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	tracer := telemetry.NewNoOpTracer()
	hasher := fs.NewHasher()
	application := app.New(
		config.NewLoader(log),
		fs.NewCopier(fs.NewWalker(), hasher),
		manifest.NewGenerator(fs.NewResolver(), hasher, log, tracer),
		template.NewRenderer(),
		mocks.NewMockWatcher(ctrl),
		log,
		tracer,
	)

	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: log}, func() {}, nil
	}, log
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func TestRun_Version(t *testing.T) {
	provider, _ := newProvider(t)

	exitCode := run(t.Context(), []string{"version"}, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(t.Context(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_Build(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	root := t.TempDir()
	writeFile(t, root, "precache.yaml", "version: \"1\"\n")
	writeFile(t, root, "app/index.html", "<html></html>")
	writeFile(t, root, "app/js/app.js", "console.log('hi');")
	writeFile(t, root, "service-worker-helpers/service-worker.tmpl", "var cacheOptions = <%= cacheOptions %>;\n")
	writeFile(t, root, "service-worker-helpers/sw-toolbox.js", "toolbox")

	provider, log := newProvider(t)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	exitCode := run(t.Context(), []string{"build", "-c", filepath.Join(root, "precache.yaml")}, new(bytes.Buffer), provider)
	require.Equal(t, 0, exitCode)

	script, err := os.ReadFile(filepath.Join(root, "dist", "service-worker.js"))
	require.NoError(t, err)
	assert.Equal(t,
		`var cacheOptions = [["css","d41d8cd98f00b204e9800998ecf8427e",[]],`+
			`["html","075306287cb1f350fdfb49e376bc0a7f",["index.html"]],`+
			`["images","d41d8cd98f00b204e9800998ecf8427e",[]],`+
			`["js","9010964ebd9cf89fb77f445e26e33c4c",["js/app.js"]]];`+"\n",
		string(script))

	assert.FileExists(t, filepath.Join(root, "app", "service-worker-helpers", "sw-toolbox.js"))
	assert.FileExists(t, filepath.Join(root, "dist", "service-worker-helpers", "sw-toolbox.js"))
}

func TestRun_ExecutionError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "precache.yaml", "version: \"1\"\n")

	provider, log := newProvider(t)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrRootUnreadable)
	})

	exitCode := run(t.Context(), []string{"generate", "-c", filepath.Join(root, "precache.yaml")}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
