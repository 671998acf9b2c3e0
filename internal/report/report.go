// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report composes the extraction steps for both chains into one
// ReportContext. A run either produces a complete context or fails with
// the first error; no partial context or derived image is left behind.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/peptide-report/internal/extract"
	"github.com/pdiddy/peptide-report/internal/fdr"
	"github.com/pdiddy/peptide-report/internal/reportdoc"
	"github.com/pdiddy/peptide-report/internal/scratch"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// Options configures a Build run.
type Options struct {
	Config types.ExtractionConfig
	Log    zerolog.Logger

	// Now stamps the context date. Defaults to time.Now.
	Now func() time.Time
}

// step is one per-chain extraction stage writing into a ChainReport.
type step struct {
	name string
	run  func(*run, *reportdoc.Section, *types.ChainReport) error
}

// steps lists the per-chain stages in execution order.
var steps = []step{
	{"sequence", func(_ *run, s *reportdoc.Section, cr *types.ChainReport) (err error) {
		cr.Sequence, err = extract.Sequence(s)
		return err
	}},
	{"mass", func(_ *run, s *reportdoc.Section, cr *types.ChainReport) (err error) {
		cr.CalculatedMass, err = extract.CalculatedMass(s)
		return err
	}},
	{"peptides", func(r *run, s *reportdoc.Section, cr *types.ChainReport) (err error) {
		cr.Peptides, err = extract.Peptides(s, r.cfg.PositionThreshold, r.log)
		return err
	}},
	{"isotope_labels", func(_ *run, s *reportdoc.Section, cr *types.ChainReport) (err error) {
		cr.IsotopeLabels, err = extract.IsotopeLabels(s)
		return err
	}},
	{"coverage", func(r *run, s *reportdoc.Section, cr *types.ChainReport) (err error) {
		cr.CoverageImage, err = extract.Coverage(s, r.dir, r.cfg, r.sc)
		return err
	}},
	{"peptide_map", func(r *run, s *reportdoc.Section, cr *types.ChainReport) (err error) {
		cr.TypicalPeptideMap, err = extract.TypicalPeptideMap(s, r.dir, r.cfg)
		return err
	}},
	{"fdr", func(r *run, s *reportdoc.Section, cr *types.ChainReport) (err error) {
		cr.FDR, err = fdr.Segment(r.dir, s.Chain, r.cfg.FDR, r.sc)
		return err
	}},
}

type run struct {
	dir string
	cfg types.ExtractionConfig
	sc  *scratch.Context
	log zerolog.Logger
}

// Build extracts every chain-level record from the report in in.ReportDir,
// writing derived images into sc. On failure it discards the images it
// wrote and returns the first error.
func Build(in types.ReportInput, sc *scratch.Context, opts Options) (*types.ReportContext, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report input: %w", err)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extraction config: %w", err)
	}
	if sc == nil {
		return nil, errors.New("scratch context is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	rc, err := build(in, sc, opts)
	if err != nil {
		if derr := sc.Discard(); derr != nil {
			opts.Log.Warn().Err(derr).Msg("discarding derived images")
		}
		return nil, err
	}
	rc.Date = now().Format(opts.Config.DateLayout)

	opts.Log.Info().
		Str("order", in.OrderNumber).
		Int("heavy_peptides", len(rc.Heavy.Peptides)).
		Int("light_peptides", len(rc.Light.Peptides)).
		Int("heavy_fdr", len(rc.Heavy.FDR)).
		Int("light_fdr", len(rc.Light.FDR)).
		Int("images", len(sc.Written())).
		Msg("report extracted")
	return rc, nil
}

func build(in types.ReportInput, sc *scratch.Context, opts Options) (*types.ReportContext, error) {
	doc, err := reportdoc.Load(in.ReportDir, opts.Config.HTMLFile)
	if err != nil {
		return nil, err
	}
	secs, err := doc.FindSections()
	if err != nil {
		return nil, err
	}
	opts.Log.Debug().Str("path", doc.Path).Msg("located chain sections")

	r := &run{dir: in.ReportDir, cfg: opts.Config, sc: sc, log: opts.Log}
	rc := &types.ReportContext{
		OrderNumber: in.OrderNumber,
		SampleName:  in.SampleName,
		Heavy:       types.ChainReport{Chain: types.ChainHeavy, MeasuredMass: in.HeavyMass},
		Light:       types.ChainReport{Chain: types.ChainLight, MeasuredMass: in.LightMass},
	}
	for _, c := range types.Chains {
		s := secs.Get(c)
		cr := rc.Chain(c)
		for _, st := range steps {
			if err := st.run(r, s, cr); err != nil {
				return nil, err
			}
			opts.Log.Debug().Str("chain", string(c)).Str("step", st.name).Msg("step done")
		}
	}
	return rc, nil
}
