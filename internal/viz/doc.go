// Package viz renders calculation reports for the terminal.
//
// Reports are built from [export.Report] values, the same data that is
// written as JSON:
//
//   - [RenderReport]: ODEs, initial values, solutions, integrals, transforms
//   - [RenderVerify] and [RenderCompare]: numeric check tables
//   - [Plot]: an asciigraph chart of sampled trajectories
//
// Colors come from a [Theme]; lipgloss drops them when the output is not a
// terminal.
package viz
