package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/ribbon/internal/cartoon"
	"github.com/Faultbox/ribbon/internal/chainfile"
	"github.com/Faultbox/ribbon/internal/config"
	"github.com/Faultbox/ribbon/internal/logger"
	"github.com/Faultbox/ribbon/internal/objexport"
)

// builders holds one builder per chain kind.
type builders struct {
	mode    string
	protein *cartoon.Builder
	nucleic *cartoon.Builder
}

func newBuilders(cfg *config.Config) (*builders, error) {
	ps, err := cfg.CartoonStyle()
	if err != nil {
		return nil, err
	}
	ns, err := cfg.NucleotideStyle.ToStyle()
	if err != nil {
		return nil, fmt.Errorf("nucleotide style: %w", err)
	}
	ns.Workers = cfg.Build.Workers

	b := &builders{mode: cfg.Build.Mode}
	if b.protein, err = cartoon.NewBuilder(ps); err != nil {
		return nil, err
	}
	if b.nucleic, err = cartoon.NewBuilder(ns); err != nil {
		return nil, err
	}
	return b, nil
}

// build meshes one chain. Nucleic chains, and every chain in nucleotide
// mode, go through the nucleotide builder.
func (b *builders) build(ctx context.Context, c chainfile.Chain) (cartoon.Result, error) {
	residues := cartoon.Residues(c.Residues)
	switch {
	case c.Kind == chainfile.KindNucleic || b.mode == config.ModeNucleotide:
		return b.nucleic.BuildNucleotide(residues), nil
	case b.mode == config.ModeParallel:
		return b.protein.BuildParallel(ctx, residues)
	default:
		return b.protein.Build(residues), nil
	}
}

// buildAll meshes every chain concurrently and concatenates the meshes in
// file order.
func buildAll(ctx context.Context, b *builders, chains []chainfile.Chain) (cartoon.MeshBuffers, cartoon.Stats, error) {
	results := make([]cartoon.Result, len(chains))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range chains {
		i, c := i, c
		g.Go(func() error {
			r, err := b.build(gctx, c)
			if err != nil {
				return fmt.Errorf("chain %s: %w", c.ID, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return cartoon.MeshBuffers{}, cartoon.Stats{}, err
	}

	var mesh cartoon.MeshBuffers
	var total cartoon.Stats
	for i, r := range results {
		base := mesh.Append(&r.Mesh)
		logger.Info("chain meshed",
			zap.String("chain", chains[i].ID),
			zap.String("kind", chains[i].Kind),
			zap.Int("residues", len(chains[i].Residues)),
			zap.Int("vertices", r.Mesh.VertexCount()),
			zap.Int("triangles", r.Mesh.TriangleCount()),
			zap.Uint32("baseVertex", base),
			zap.Int("skippedGap", r.Stats.SkippedGap),
			zap.Int("skippedDistance", r.Stats.SkippedDistance))
		total.Frames += r.Stats.Frames
		total.Windows += r.Stats.Windows
		total.Meshed += r.Stats.Meshed
		total.SkippedGap += r.Stats.SkippedGap
		total.SkippedDistance += r.Stats.SkippedDistance
		total.Caps += r.Stats.Caps
		total.Capsules += r.Stats.Capsules
	}
	return mesh, total, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	f, err := chainfile.ParseFile(cfg.Build.Input)
	if err != nil {
		return err
	}
	b, err := newBuilders(cfg)
	if err != nil {
		return err
	}

	mesh, stats, err := buildAll(ctx, b, f.Chains)
	if err != nil {
		return err
	}
	if err := objexport.WriteFile(cfg.Build.Output, &mesh, "ribbon"); err != nil {
		return err
	}

	bounds := mesh.Bounds()
	logger.Info("mesh written",
		zap.String("path", cfg.Build.Output),
		zap.String("mode", cfg.Build.Mode),
		zap.Int("chains", len(f.Chains)),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("capsules", stats.Capsules),
		zap.Any("min", bounds.Min),
		zap.Any("max", bounds.Max))
	return nil
}
