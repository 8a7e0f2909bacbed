package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/bundle"
	"github.com/jackzampolin/casebundle/internal/casestore"
	"github.com/jackzampolin/casebundle/internal/manifest"
	"github.com/jackzampolin/casebundle/internal/svcctx"
	"github.com/jackzampolin/casebundle/internal/types"
)

// ListCasesResponse is the response for listing cases.
type ListCasesResponse struct {
	Cases []casestore.Case `json:"cases"`
}

// ListCasesEndpoint handles GET /api/cases.
type ListCasesEndpoint struct{}

func (e *ListCasesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/cases", e.handler
}

func (e *ListCasesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List cases
//	@Description	Lists the cases in the case database, newest first
//	@Tags			cases
//	@Produce		json
//	@Success		200	{object}	ListCasesResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/cases [get]
func (e *ListCasesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cases, err := svcctx.CasesFrom(r.Context()).Cases(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if cases == nil {
		cases = []casestore.Case{}
	}
	writeJSON(w, http.StatusOK, ListCasesResponse{Cases: cases})
}

func (e *ListCasesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListCasesResponse
			if err := client.Get(cmd.Context(), "/api/cases", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// CaseDocumentsResponse lists the bundle documents of a case with their
// planned page ranges.
type CaseDocumentsResponse struct {
	Case       casestore.Case         `json:"case"`
	Documents  []types.BundleDocument `json:"documents"`
	TOCEntries []types.TOCEntry       `json:"toc_entries"`
	TotalPages int                    `json:"total_pages"`
}

// CaseDocumentsEndpoint handles GET /api/cases/{id}/documents.
type CaseDocumentsEndpoint struct{}

func (e *CaseDocumentsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/cases/{id}/documents", e.handler
}

func (e *CaseDocumentsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List case documents
//	@Description	Returns the ordered bundle documents of a case and a table of contents preview
//	@Tags			cases
//	@Produce		json
//	@Param			id	path		string	true	"Case ID"
//	@Success		200	{object}	CaseDocumentsResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/cases/{id}/documents [get]
func (e *CaseDocumentsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	store := svcctx.CasesFrom(r.Context())

	c, err := store.Case(r.Context(), id)
	if err != nil {
		writeCaseError(w, err)
		return
	}
	docs, err := store.BundleDocuments(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if docs == nil {
		docs = []types.BundleDocument{}
	}

	compiler := svcctx.CompilerFrom(r.Context())
	if compiler == nil {
		writeError(w, http.StatusServiceUnavailable, "compiler not initialized")
		return
	}
	p := Preview(compiler, docs, nil)

	writeJSON(w, http.StatusOK, CaseDocumentsResponse{
		Case:       *c,
		Documents:  docs,
		TOCEntries: p.TOCEntries,
		TotalPages: p.TotalPages,
	})
}

func (e *CaseDocumentsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "documents <case-id>",
		Short: "List the bundle documents of a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp CaseDocumentsResponse
			if err := client.Get(cmd.Context(), "/api/cases/"+args[0]+"/documents", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// CompileCaseRequest is the optional request body for compiling a case.
type CompileCaseRequest struct {
	OutputDir  string            `json:"output_dir,omitempty"`
	BundleName string            `json:"bundle_name,omitempty"`
	Style      manifest.Style    `json:"style,omitempty"`
	LateInsert *types.LateInsert `json:"late_insert,omitempty"`
}

// CompileCaseEndpoint handles POST /api/cases/{id}/compile.
type CompileCaseEndpoint struct{}

func (e *CompileCaseEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/cases/{id}/compile", e.handler
}

func (e *CompileCaseEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Compile a case bundle
//	@Description	Compiles the documents of a case in their stored order. The bundle is named after the case unless bundle_name is set.
//	@Tags			cases
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Case ID"
//	@Param			request	body		CompileCaseRequest	false	"Overrides"
//	@Success		200		{object}	types.CompileResult
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/cases/{id}/compile [post]
func (e *CompileCaseEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req CompileCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	store := svcctx.CasesFrom(r.Context())
	c, err := store.Case(r.Context(), id)
	if err != nil {
		writeCaseError(w, err)
		return
	}

	compiler := svcctx.CompilerFrom(r.Context())
	if compiler == nil {
		writeError(w, http.StatusServiceUnavailable, "compiler not initialized")
		return
	}

	cfg := effectiveConfig(r.Context())
	breq := bundle.Request{
		OutputDir:  caseOutputDir(r, id, req.OutputDir),
		BundleName: req.BundleName,
		Style:      req.Style.Apply(cfg.Pagination),
		LateInsert: cfg.ResolveLateInsert(req.LateInsert),
	}
	if breq.BundleName == "" {
		breq.BundleName = BundleNameFor(c.Name)
	}
	if err := breq.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := compiler.CompileCase(r.Context(), store, id, breq)
	if err != nil {
		if logger := svcctx.LoggerFrom(r.Context()); logger != nil {
			logger.Error("case compile failed", "case", id, "error", err)
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// caseOutputDir defaults a case bundle to {output.dir}/{id}, or to the case
// directory under {home}/bundles.
func caseOutputDir(r *http.Request, id, override string) string {
	if override != "" {
		return override
	}
	if dir := effectiveConfig(r.Context()).Output.Dir; dir != "" {
		return filepath.Join(dir, id)
	}
	if h := svcctx.HomeFrom(r.Context()); h != nil {
		return h.CaseBundlesPath(id)
	}
	return ""
}

// BundleNameFor turns a case name into a bundle file name.
func BundleNameFor(caseName string) string {
	name := strings.TrimSpace(strings.NewReplacer("/", "-", `\`, "-").Replace(caseName))
	if name == "" || name == "." || name == ".." {
		return "bundle"
	}
	return name
}

func writeCaseError(w http.ResponseWriter, err error) {
	if errors.Is(err, casestore.ErrCaseNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (e *CompileCaseEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req CompileCaseRequest
	var lateMode string
	var insertAfter, insertCount int
	cmd := &cobra.Command{
		Use:   "compile <case-id>",
		Short: "Compile the bundle of a case on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if insertCount > 0 {
				req.LateInsert = &types.LateInsert{
					Mode:  types.LateInsertMode(lateMode),
					After: insertAfter,
					Count: insertCount,
				}
			}
			client := api.NewClient(getServerURL())
			var result types.CompileResult
			path := fmt.Sprintf("/api/cases/%s/compile", args[0])
			if err := client.Post(cmd.Context(), path, req, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
	cmd.Flags().StringVar(&req.BundleName, "name", "", "Bundle name (default: the case name)")
	cmd.Flags().StringVar(&req.OutputDir, "out", "", "Output directory on the server")
	cmd.Flags().StringVar(&req.Style.Format, "format", "", "Page number format")
	cmd.Flags().StringVar(&req.Style.Position, "position", "", "Page number position")
	cmd.Flags().Float64Var(&req.Style.FontSize, "font-size", 0, "Page number font size")
	cmd.Flags().StringVar(&lateMode, "late-mode", "", "Late insert mode (repaginate or sub_number)")
	cmd.Flags().IntVar(&insertAfter, "insert-after", 0, "Index of the document late inserts follow")
	cmd.Flags().IntVar(&insertCount, "insert-count", 0, "Number of late inserted documents")
	return cmd
}
