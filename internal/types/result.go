package types

// Validation error types.
const (
	ErrTOCOverlap        = "toc_overlap"
	ErrPaginationGap     = "pagination_gap"
	ErrPageCountMismatch = "page_count_mismatch"
	ErrTotalPageMismatch = "total_page_mismatch"
	ErrEmptyBundle       = "empty_bundle"
)

// ValidationError is one detected pagination inconsistency.
type ValidationError struct {
	ErrorType string `json:"error_type" yaml:"error_type"`
	Message   string `json:"message" yaml:"message"`
	Page      *int   `json:"page,omitempty" yaml:"page,omitempty"`
	Expected  *int   `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual    *int   `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// ValidationResult is the outcome of a pagination check.
// IsValid is true iff Errors is empty; warnings never affect validity.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid" yaml:"is_valid"`
	Errors   []ValidationError `json:"errors" yaml:"errors"`
	Warnings []string          `json:"warnings" yaml:"warnings"`
}

// CompileResult is the externally visible outcome of one compilation.
type CompileResult struct {
	Success    bool       `json:"success" yaml:"success"`
	PDFPath    string     `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`
	TOCEntries []TOCEntry `json:"toc_entries" yaml:"toc_entries"`
	TotalPages int        `json:"total_pages" yaml:"total_pages"`
	Errors     []string   `json:"errors" yaml:"errors"`
	Warnings   []string   `json:"warnings" yaml:"warnings"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
