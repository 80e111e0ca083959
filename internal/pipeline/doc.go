// Package pipeline implements the Markdown-to-LaTeX conversion pipeline.
//
// This package handles the stages around the core renderer:
//   - Markdown preprocessing (line normalization, blank-line compression)
//   - YAML front matter extraction
//   - Markdown to LaTeX body conversion via internal/latex
//   - Document assembly from the skeleton, header and preamble directives
//
// Compilation with latexmk is handled separately by internal/toolchain. This
// separation keeps the pipeline free of subprocesses, while the toolchain
// deals with working directories, timeouts and build logs.
package pipeline
