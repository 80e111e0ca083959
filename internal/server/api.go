package server

// RenderRequest is the body of POST /api/render.
type RenderRequest struct {
	Content  string `json:"content"`
	Template string `json:"template"`
	Compile  bool   `json:"compile"`
}

// RenderResponse is returned by POST /api/render.
type RenderResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"job_id,omitempty"`
	Logs    string `json:"logs"`
	PDFURL  string `json:"pdf_url,omitempty"`
	TeXURL  string `json:"tex_url,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// TemplatesResponse is returned by GET /api/templates.
type TemplatesResponse struct {
	Templates []string `json:"templates"`
}

// Fixed names inside a job work area.
const (
	SourceName = "document.md"
	TeXName    = "document.tex"
	PDFName    = "document.pdf"
)

// Response details.
const (
	DetailCompileFailed   = "LaTeX compilation failed."
	DetailConvertFailed   = "Markdown to LaTeX conversion failed."
	DetailBadRequest      = "Request body must be a JSON object with a content field."
	DetailUnauthorized    = "Missing or invalid bearer token."
	DetailInternalError   = "Internal error."
	DetailInvalidTemplate = "Invalid template name."
)
