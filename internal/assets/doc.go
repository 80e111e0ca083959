// Package assets provides the LaTeX document skeletons and per-template
// header sets used to assemble a complete .tex file.
// Assets can be loaded from embedded files or custom filesystem paths.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in skeletons)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the assembler. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. Overriding one template set keeps the built-in skeleton.
//
// # Directory Structure
//
//	{basePath}/
//	├── skeletons/
//	│   └── {name}.tex           # document skeleton (e.g., article.tex)
//	└── templates/
//	    └── {name}/
//	        ├── header.tex       # title block placed after \begin{document}
//	        └── directives.yaml  # optional front matter keys mapped to preamble commands
//
// Skeletons and headers are text/template sources using << and >> as
// delimiters, so LaTeX braces need no quoting.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
