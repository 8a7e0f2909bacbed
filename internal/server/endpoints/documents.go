package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/pdfgraph"
)

// InspectRequest is the request body for inspecting a PDF.
type InspectRequest struct {
	Path string `json:"path"`
}

// InspectDocumentEndpoint handles POST /api/documents/inspect.
type InspectDocumentEndpoint struct{}

func (e *InspectDocumentEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/inspect", e.handler
}

func (e *InspectDocumentEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Inspect a PDF
//	@Description	Reads the page count, document title and size of a PDF on the server
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			request	body		InspectRequest	true	"PDF path"
//	@Success		200		{object}	pdfgraph.Info
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/documents/inspect [post]
func (e *InspectDocumentEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req InspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	if _, err := os.Stat(req.Path); errors.Is(err, os.ErrNotExist) {
		writeError(w, http.StatusNotFound, "file not found: "+req.Path)
		return
	}

	info, err := pdfgraph.Inspect(req.Path)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (e *InspectDocumentEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Inspect a PDF on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var info pdfgraph.Info
			if err := client.Post(cmd.Context(), "/api/documents/inspect", InspectRequest{Path: path}, &info); err != nil {
				return err
			}
			return api.Output(info)
		},
	}
}
