// Package wiki chains the catalogue build, the icon render and the wiki
// server into one run.
package wiki

import (
	"context"

	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
)

// Step is one stage of the pipeline
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline runs steps in order and stops at the first failure
type Pipeline struct {
	Steps []Step
}

// Run executes the steps. The returned error names the failed step, e.g.
// "Generator failed".
func (p *Pipeline) Run(ctx context.Context) error {
	for _, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return errors.WrapWithCode(err, errors.CodeCanceled, step.Name+" cancelled")
		}

		log.Info("running step", "step", step.Name)
		if err := step.Run(ctx); err != nil {
			return errors.Wrap(err, step.Name+" failed")
		}
	}
	return nil
}
