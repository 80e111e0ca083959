// Package md2tex converts Markdown documents to LaTeX and, optionally,
// typesets them with latexmk and xelatex.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2tex.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2tex.Input{
//	    Markdown: "---\ntitle: Limits\n---\n# Hello\n\n$x^2$",
//	    Template: "matnoble",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("doc/limits.tex", result.TeX, 0644)
//
// The result carries the complete document (result.TeX), the body alone
// (result.Body) and the front matter that filled the skeleton
// (result.Metadata).
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line normalization, blank-line compression)
//  2. YAML front matter extraction
//  3. Markdown to LaTeX body via Goldmark, with $...$ and $$...$$ math
//  4. Assembly into the document skeleton (class, title block, preamble)
//
// Text is escaped for LaTeX; formula content, code block bodies, URLs and
// front matter values are inserted verbatim.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2tex.NewConverter(
//	    md2tex.WithAssetPath("/path/to/custom/assets"),
//	    md2tex.WithResolveLanguages(true),
//	    md2tex.WithDefaultAuthor("Li Lei"),
//	)
//
// # Compiling
//
// Builder copies the class file and images next to the .tex file and runs
// latexmk:
//
//	b := md2tex.NewBuilder(2 * time.Minute)
//	res, err := b.Build(ctx, "doc/limits.tex", md2tex.BuildOptions{
//	    ResourcesDir: "doc",
//	    Template:     "matnoble",
//	    Clean:        true,
//	})
//	if errors.Is(err, md2tex.ErrCompile) {
//	    fmt.Println(res.Log)
//	}
//
// # Custom Assets
//
// Override the built-in skeleton and header templates with WithAssetPath:
//
//	assets/
//	├── skeletons/
//	│   └── article.tex
//	└── templates/
//	    └── mytemplate/
//	        ├── header.tex
//	        └── directives.yaml
//
// Templates use << >> delimiters. Missing files fall back to the embedded
// defaults, and an unknown template name uses the "default" header set.
package md2tex
