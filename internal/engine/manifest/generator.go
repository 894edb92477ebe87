// Package manifest generates deterministic precache manifests from a distribution tree.
package manifest

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Generator partitions a distribution tree into groups, fingerprints them and assembles the manifest.
type Generator struct {
	resolver ports.FileResolver
	hasher   ports.Hasher
	logger   ports.Logger
	tracer   ports.Tracer
}

// NewGenerator creates a new Generator.
func NewGenerator(
	resolver ports.FileResolver,
	hasher ports.Hasher,
	logger ports.Logger,
	tracer ports.Tracer,
) *Generator {
	return &Generator{
		resolver: resolver,
		hasher:   hasher,
		logger:   logger,
		tracer:   tracer,
	}
}

// Generate evaluates every group of cfg against cfg.DistDir in name order and returns the manifest
// together with the per-group results, rejected groups included.
// The generated worker script is never part of a group, so a previous run's output does not
// feed into the next one. The first resolution or read failure aborts the run.
func (g *Generator) Generate(ctx context.Context, cfg domain.Config) (domain.Manifest, []domain.GroupResult, error) {
	ctx, span := g.tracer.Start(ctx, "generate")
	defer span.End()

	groups := cfg.SortedGroups()
	span.SetAttribute("groups", len(groups))

	results := make([]domain.GroupResult, 0, len(groups))
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return domain.Manifest{}, nil, err
		}

		result, err := g.evaluate(ctx, cfg.DistDir, group, cfg.Limits, cfg.OutputPath())
		if err != nil {
			span.RecordError(err)
			return domain.Manifest{}, nil, err
		}

		g.report(result)
		results = append(results, result)
	}

	m := domain.NewManifest(results)
	span.SetAttribute("groups.accepted", len(m.Entries))

	return m, results, nil
}

// evaluate resolves, hashes and validates a single group.
func (g *Generator) evaluate(
	ctx context.Context,
	root string,
	group domain.FileGroup,
	limits domain.Limits,
	output string,
) (domain.GroupResult, error) {
	_, span := g.tracer.Start(ctx, "group "+group.Name)
	defer span.End()

	span.SetAttribute("group.pattern", group.Pattern)

	files, err := g.resolver.Resolve(root, group.Pattern)
	if err != nil {
		span.RecordError(err)
		return domain.GroupResult{}, zerr.With(zerr.Wrap(err, "failed to resolve group"), "group", group.Name)
	}
	files = slices.DeleteFunc(files, func(f domain.ResolvedFile) bool {
		return f.Path == output
	})

	var total int64
	for i := range files {
		digest, err := g.hasher.HashFile(files[i].Path)
		if err != nil {
			span.RecordError(err)
			return domain.GroupResult{}, zerr.With(zerr.Wrap(err, "failed to hash group"), "group", group.Name)
		}
		files[i].Digest = digest
		total += files[i].Size
	}

	result := domain.GroupResult{
		Name:        group.Name,
		Fingerprint: Fingerprint(g.hasher, files),
		Files:       files,
		TotalSize:   total,
		Accepted:    limits.Accept(total, len(files)),
	}

	span.SetAttribute("group.files", len(files))
	span.SetAttribute("group.bytes", total)
	span.SetAttribute("group.accepted", result.Accepted)

	return result, nil
}

// report sends the outcome of one group to the logger.
func (g *Generator) report(result domain.GroupResult) {
	if result.Accepted {
		g.logger.Info(fmt.Sprintf("Added %s - %d files, %d bytes",
			result.Name, result.FileCount(), result.TotalSize))
		return
	}

	g.logger.Warn(fmt.Sprintf("Skipped %s - %d files, %d bytes",
		result.Name, result.FileCount(), result.TotalSize))
}
