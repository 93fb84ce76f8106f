package translate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pattyshack/gt/parseutil"
	"gopkg.in/yaml.v3"

	"github.com/cgrenz/revamb/binaryfile"
	"github.com/cgrenz/revamb/ir"
)

// Pass-composition strategy.  Fused trades module-wide reach for a cheap
// single traversal; split is idempotent and module-wide; locate-then-split
// shares the locator's tags with the split rewrite.
type Strategy string

const (
	FusedOnly       = Strategy("fused")
	SplitOnly       = Strategy("split")
	LocateThenSplit = Strategy("locate-then-split")
)

type Config struct {
	Strategy Strategy `yaml:"strategy"`

	// When set, the fused variant applies the split variant's positional
	// duplicate-call check.  Off by default: fused is meant for single
	// application and skipping the check keeps its traversal cheap.
	FusedRecheck bool `yaml:"fused-recheck"`
}

func DefaultConfig() Config {
	return Config{
		Strategy: LocateThenSplit,
	}
}

func ParseConfig(content []byte) (Config, error) {
	config := DefaultConfig()
	err := yaml.Unmarshal(content, &config)
	if err != nil {
		return Config{}, fmt.Errorf("parse pipeline config: %w", err)
	}
	return config, config.Validate()
}

func (config Config) Validate() error {
	switch config.Strategy {
	case FusedOnly, SplitOnly, LocateThenSplit:
		return nil
	default:
		return fmt.Errorf(
			"unknown pass composition strategy (%s)",
			config.Strategy)
	}
}

// Translate runs the relocation pipeline over module: the configured
// call-synthesis composition, plus the library metadata annotator.  The
// module must not be processed concurrently by anything else for the
// duration of the call.
//
// An error indicates an inconsistent program representation left behind
// by an earlier pass, never a non-matching pattern.
func Translate(
	module *ir.Module,
	input *binaryfile.File,
	oracle JumpTargetOracle,
	config Config,
) (bool, error) {
	err := config.Validate()
	if err != nil {
		return false, err
	}

	emitter := &parseutil.Emitter{}
	ctx := NewContext(input.Relocations, oracle, emitter)
	annotator := NewLibraryMetadataAnnotator(input.Libraries)

	var passes [][]Pass[*ir.Module]
	switch config.Strategy {
	case FusedOnly:
		passes = [][]Pass[*ir.Module]{
			{NewFusedCallSynthesizer(ctx, config.FusedRecheck), annotator},
		}
	case SplitOnly:
		passes = [][]Pass[*ir.Module]{
			{NewSplitCallSynthesizer(ctx), annotator},
		}
	case LocateThenSplit:
		passes = [][]Pass[*ir.Module]{
			{NewRelocationLocator(ctx), annotator},
			{NewSplitCallSynthesizer(ctx)},
		}
	}

	Process(module, passes, emitter.HasErrors)

	changed := false
	for _, group := range passes {
		for _, pass := range group {
			reporter, ok := pass.(interface{ Changed() bool })
			if ok && reporter.Changed() {
				changed = true
			}
		}
	}

	slog.Debug(
		"relocation translation complete",
		"module", module.Name,
		"strategy", config.Strategy,
		"changed", changed,
		"errors", len(emitter.Errors()))

	if emitter.HasErrors() {
		return changed, errors.Join(emitter.Errors()...)
	}
	return changed, nil
}
