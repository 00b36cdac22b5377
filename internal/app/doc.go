// Package app orchestrates a complete sales analytics run.
//
// Pipeline wires the stages together: ledger read, parse, validation and
// filtering, analytics, catalog fetch, enrichment, exports and the text
// report. Each stage prints a numbered status line; collaborator failures
// (missing ledger, unreachable catalog, export errors) degrade the run
// instead of aborting it.
//
// # Usage
//
//	p := app.NewPipeline(cfg, logger, app.Options{NoPrompt: true})
//	if err := p.Run(ctx); err != nil {
//	    // only unexpected conditions reach here
//	}
package app
