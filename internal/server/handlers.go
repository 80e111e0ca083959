package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"t73f.de/r/webs/ip"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/assets"
	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/hints"
	"github.com/alnah/go-md2tex/internal/logging"
	"github.com/alnah/go-md2tex/internal/resources"
)

func (srv *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (srv *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	templates, err := resources.ListClasses(srv.cfg.ResourcesDir)
	if err != nil {
		srv.log.Warn("Listing templates", "dir", srv.cfg.ResourcesDir, logging.Err(err))
		templates = []string{}
	}
	writeJSON(w, http.StatusOK, TemplatesResponse{Templates: templates})
}

// handleRender runs one job: write the source, convert, optionally compile.
// Failures after the request is accepted are answered with 200 and
// success=false so clients always get the log.
func (srv *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	body := http.MaxBytesReader(w, r.Body, srv.cfg.MaxRequestSize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		srv.log.Info("Rejecting render request", "remote", ip.GetRemoteAddr(r), logging.Err(err))
		writeJSON(w, http.StatusBadRequest, RenderResponse{Detail: DetailBadRequest})
		return
	}

	template := req.Template
	if template == "" {
		template = srv.cfg.DefaultTemplate
	}
	if err := assets.ValidateAssetName(template); err != nil {
		writeJSON(w, http.StatusOK, RenderResponse{
			Logs:   "> Error: " + err.Error(),
			Detail: DetailInvalidTemplate,
		})
		return
	}

	job, swept, err := srv.cfg.Jobs.Create()
	for _, p := range swept {
		srv.log.Debug("Swept job", "dir", p)
	}
	if err != nil {
		srv.log.Error("Creating job", logging.Err(err))
		writeJSON(w, http.StatusOK, RenderResponse{
			Logs:   "> System Error: " + err.Error(),
			Detail: DetailInternalError,
		})
		return
	}

	jl := &jobLog{}
	resp := srv.runJob(r, job.ID, job.Path(SourceName), job.Path(TeXName), template, req, jl)
	resp.Logs = jl.String()
	srv.log.Info("Rendered", "job", job.ID, "template", template, "compile", req.Compile, "success", resp.Success)
	writeJSON(w, http.StatusOK, resp)
}

func (srv *Server) runJob(r *http.Request, id, mdPath, texPath, template string, req RenderRequest, jl *jobLog) RenderResponse {
	ctx := r.Context()

	if err := fileutil.WriteAtomic(mdPath, []byte(req.Content), 0o600); err != nil {
		jl.Add("> System Error: " + err.Error())
		return RenderResponse{Detail: DetailInternalError}
	}
	jl.Add("> Writing " + SourceName + "... Done.")

	res, err := srv.cfg.Converter.Convert(ctx, md2tex.Input{Markdown: req.Content, Template: template})
	if err != nil {
		srv.log.Info("Conversion failed", "job", id, logging.Err(err))
		jl.Add("> Error: " + DetailConvertFailed)
		jl.Add("> " + err.Error())
		return RenderResponse{Detail: DetailConvertFailed}
	}
	if err := fileutil.WriteAtomic(texPath, res.TeX, 0o600); err != nil {
		jl.Add("> System Error: " + err.Error())
		return RenderResponse{Detail: DetailInternalError}
	}
	jl.Add("> LaTeX source generated at " + TeXName)

	resp := RenderResponse{Success: true, JobID: id, TeXURL: artifactURL(id, TeXName)}
	if !req.Compile {
		return resp
	}

	jl.Add("> Starting LaTeXmk compilation...")
	// A client disconnect does not stop latexmk; only the builder timeout does.
	build, err := srv.cfg.Builder.Build(context.WithoutCancel(ctx), texPath, md2tex.BuildOptions{
		ResourcesDir: srv.cfg.ResourcesDir,
		Template:     template,
		Compile:      true,
		Clean:        true,
	})
	if build != nil && build.Log != "" {
		jl.Add(build.Log)
	}
	switch {
	case errors.Is(err, md2tex.ErrCompile):
		jl.Add(fmt.Sprintf("> Error: Compilation failed with exit code %d", build.ExitCode))
		return RenderResponse{JobID: id, Detail: DetailCompileFailed}
	case err != nil:
		srv.log.Warn("Build failed", "job", id, logging.Err(err))
		jl.Add("> System Error: " + err.Error())
		return RenderResponse{JobID: id, Detail: DetailCompileFailed}
	}

	jl.Add("> Compilation successful. Cleaning up...")
	jl.Add("> Ready.")
	if build.PDFPath != "" {
		resp.PDFURL = artifactURL(id, PDFName)
	}
	return resp
}

// requireToken rejects requests without a bearer token matching the
// configured bcrypt hash. Without a hash every request passes.
func (srv *Server) requireToken(next http.Handler) http.Handler {
	if len(srv.cfg.TokenHash) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || !checkToken(srv.cfg.TokenHash, token) {
			srv.log.Info("Unauthorized", "remote", ip.GetRemoteAddr(r), "path", r.URL.Path)
			w.Header().Set("WWW-Authenticate", `Bearer realm="md2tex"`)
			writeJSON(w, http.StatusUnauthorized, RenderResponse{
				Logs:   "> Error: " + DetailUnauthorized + hints.ForUnauthorized(),
				Detail: DetailUnauthorized,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func artifactURL(id, name string) string {
	return "/build/" + id + "/" + name
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// jobLog collects the lines returned to the client.
type jobLog struct {
	lines []string
}

func (l *jobLog) Add(line string) {
	l.lines = append(l.lines, line)
}

func (l *jobLog) String() string {
	return strings.Join(l.lines, "\n")
}
