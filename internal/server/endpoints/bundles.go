package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/bundle"
	"github.com/jackzampolin/casebundle/internal/config"
	"github.com/jackzampolin/casebundle/internal/manifest"
	"github.com/jackzampolin/casebundle/internal/svcctx"
	"github.com/jackzampolin/casebundle/internal/toc"
	"github.com/jackzampolin/casebundle/internal/types"
)

// effectiveConfig returns the server's current configuration, or the
// built-in defaults when none is attached to ctx.
func effectiveConfig(ctx context.Context) *config.Config {
	if live := svcctx.ConfigFrom(ctx); live != nil {
		return live.Get()
	}
	return config.DefaultConfig()
}

// outputDir picks the bundle directory: override, then output.dir, then
// {home}/bundles.
func outputDir(ctx context.Context, override string) string {
	if override != "" {
		return override
	}
	if dir := effectiveConfig(ctx).Output.Dir; dir != "" {
		return dir
	}
	if h := svcctx.HomeFrom(ctx); h != nil {
		return h.BundlesPath()
	}
	return ""
}

// loadManifest reads a manifest with paths made absolute, so a server in
// another working directory finds the files.
func loadManifest(path string) (*manifest.Manifest, bundle.Request, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, bundle.Request{}, err
	}
	m, err := manifest.Load(abs)
	if err != nil {
		return nil, bundle.Request{}, err
	}
	req, err := m.Request(types.PaginationStyle{}, "")
	if err != nil {
		return nil, bundle.Request{}, err
	}
	return m, req, nil
}

// PreviewRequest is the request body for previewing a table of contents.
type PreviewRequest struct {
	Documents  []types.BundleDocument `json:"documents"`
	LateInsert *types.LateInsert      `json:"late_insert,omitempty"`
}

// PreviewResponse is the planned table of contents.
type PreviewResponse struct {
	TOCEntries []types.TOCEntry `json:"toc_entries"`
	TOCPages   int              `json:"toc_pages"`
	TotalPages int              `json:"total_pages"`
}

// PreviewBundleEndpoint handles POST /api/bundles/preview.
type PreviewBundleEndpoint struct{}

func (e *PreviewBundleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/bundles/preview", e.handler
}

func (e *PreviewBundleEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Preview a table of contents
//	@Description	Plans page ranges for the documents without reading or writing any PDF
//	@Tags			bundles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PreviewRequest	true	"Documents to plan"
//	@Success		200		{object}	PreviewResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/bundles/preview [post]
func (e *PreviewBundleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	late := effectiveConfig(r.Context()).ResolveLateInsert(req.LateInsert)
	if late != nil {
		if err := late.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	compiler := svcctx.CompilerFrom(r.Context())
	if compiler == nil {
		writeError(w, http.StatusServiceUnavailable, "compiler not initialized")
		return
	}

	writeJSON(w, http.StatusOK, Preview(compiler, req.Documents, late))
}

// Preview plans the table of contents and reports its page totals.
func Preview(compiler *bundle.Compiler, docs []types.BundleDocument, late *types.LateInsert) PreviewResponse {
	entries := compiler.Preview(docs, late)
	pages := toc.EstimateTOCPages(len(docs))
	return PreviewResponse{
		TOCEntries: entries,
		TOCPages:   pages,
		TotalPages: toc.TotalPages(entries, pages),
	}
}

func (e *PreviewBundleEndpoint) Command(getServerURL func() string) *cobra.Command {
	var manifestPath string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the table of contents of a manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, breq, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp PreviewResponse
			req := PreviewRequest{Documents: breq.Documents, LateInsert: breq.LateInsert}
			if err := client.Post(cmd.Context(), "/api/bundles/preview", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Bundle manifest (YAML or JSON)")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

// CompileRequest is the request body for compiling a bundle.
// Unset style fields, output_dir and late_insert.mode use the server config.
type CompileRequest struct {
	Documents  []types.BundleDocument `json:"documents"`
	OutputDir  string                 `json:"output_dir,omitempty"`
	BundleName string                 `json:"bundle_name"`
	Style      manifest.Style         `json:"style,omitempty"`
	LateInsert *types.LateInsert      `json:"late_insert,omitempty"`
}

// CompileBundleEndpoint handles POST /api/bundles/compile.
type CompileBundleEndpoint struct{}

func (e *CompileBundleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/bundles/compile", e.handler
}

func (e *CompileBundleEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Compile a bundle
//	@Description	Stamps, merges and writes the bundle PDF. Missing documents are reported with success false.
//	@Tags			bundles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CompileRequest	true	"Bundle to compile"
//	@Success		200		{object}	types.CompileResult
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/bundles/compile [post]
func (e *CompileBundleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	compiler := svcctx.CompilerFrom(r.Context())
	if compiler == nil {
		writeError(w, http.StatusServiceUnavailable, "compiler not initialized")
		return
	}

	cfg := effectiveConfig(r.Context())
	breq := bundle.Request{
		Documents:  req.Documents,
		OutputDir:  outputDir(r.Context(), req.OutputDir),
		BundleName: req.BundleName,
		Style:      req.Style.Apply(cfg.Pagination),
		LateInsert: cfg.ResolveLateInsert(req.LateInsert),
	}
	if err := breq.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := compiler.Compile(r.Context(), breq)
	if err != nil {
		if logger := svcctx.LoggerFrom(r.Context()); logger != nil {
			logger.Error("compile failed", "bundle", req.BundleName, "error", err)
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (e *CompileBundleEndpoint) Command(getServerURL func() string) *cobra.Command {
	var manifestPath, name, out string
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a manifest on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, breq, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}
			req := CompileRequest{
				Documents:  breq.Documents,
				OutputDir:  breq.OutputDir,
				BundleName: m.Name,
				Style:      m.Style,
				LateInsert: m.LateInsert,
			}
			if name != "" {
				req.BundleName = name
			}
			if out != "" {
				if req.OutputDir, err = filepath.Abs(out); err != nil {
					return err
				}
			}

			client := api.NewClient(getServerURL())
			var result types.CompileResult
			if err := client.Post(cmd.Context(), "/api/bundles/compile", req, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Bundle manifest (YAML or JSON)")
	cmd.Flags().StringVar(&name, "name", "", "Bundle name (overrides the manifest)")
	cmd.Flags().StringVar(&out, "out", "", "Output directory (overrides the manifest)")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

// ValidateRequest is the request body for checking a compiled bundle.
type ValidateRequest struct {
	Entries []types.TOCEntry `json:"entries"`
	PDFPath string           `json:"pdf_path,omitempty"`
}

// ValidateBundleEndpoint handles POST /api/bundles/validate.
type ValidateBundleEndpoint struct{}

func (e *ValidateBundleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/bundles/validate", e.handler
}

func (e *ValidateBundleEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Validate pagination
//	@Description	Checks TOC entries for gaps and overlaps and, when pdf_path exists, its page count
//	@Tags			bundles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ValidateRequest	true	"Entries and bundle path"
//	@Success		200		{object}	types.ValidationResult
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/bundles/validate [post]
func (e *ValidateBundleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	compiler := svcctx.CompilerFrom(r.Context())
	if compiler == nil {
		writeError(w, http.StatusServiceUnavailable, "compiler not initialized")
		return
	}

	writeJSON(w, http.StatusOK, compiler.Validate(req.Entries, req.PDFPath))
}

func (e *ValidateBundleEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <result.yaml|result.json>",
		Short: "Validate a bundle from a saved compile result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := bundle.LoadResult(args[0])
			if err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var result types.ValidationResult
			req := ValidateRequest{Entries: saved.TOCEntries, PDFPath: saved.PDFPath}
			if err := client.Post(cmd.Context(), "/api/bundles/validate", req, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
}
