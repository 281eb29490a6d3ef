package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	Uploaded []string `json:"uploaded"`
}

const (
	StatusProcessing = "processing"
	StatusWarning    = "warning"
	StatusFileDone   = "file_done"
	StatusFileFailed = "file_failed"
	StatusCompleted  = "completed"
)

// ProcessingStatus is emitted after every page and after every file.
// Events are observational only; dropping one never affects the run.
type ProcessingStatus struct {
	Status         string  `json:"status"`
	File           string  `json:"file,omitempty"`
	Message        string  `json:"message"`
	Progress       float64 `json:"progress,omitempty"`
	TotalPages     int     `json:"total_pages,omitempty"`
	ProcessedPages int     `json:"processed_pages,omitempty"`
}

// FileResult is the per-file outcome reported in the run summary
type FileResult struct {
	Name           string  `json:"name"`
	OutputPath     string  `json:"output_path,omitempty"`
	TotalPages     int     `json:"total_pages"`
	PagesOK        int     `json:"pages_ok"`
	PagesFailed    int     `json:"pages_failed"`
	Success        bool    `json:"success"`
	Error          string  `json:"error,omitempty"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type RunSummary struct {
	Files          []FileResult `json:"files"`
	Succeeded      int          `json:"succeeded"`
	Failed         int          `json:"failed"`
	ElapsedSeconds float64      `json:"elapsed_seconds"`
}
