package types

import "time"

// UploadedFile holds one PDF added to the registry before a run starts.
// The registry owns it for the session; it is gone once removed.
type UploadedFile struct {
	Name string // Original file name, acts as the dedup key
	Data []byte // Raw PDF content
}

// DocumentInfo is the registry listing entry returned to clients
type DocumentInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ExtractedPage is the per-page result accumulated during a run
type ExtractedPage struct {
	PageNum int    // 1-based physical page number
	Text    string // Extracted text or the error marker for failed pages
	Failed  bool
}

// OutputDocument is the accumulated Markdown for one source PDF,
// one section per page in physical page order
type OutputDocument struct {
	SourceName string
	Markdown   string
}

// OutputInfo describes one written Markdown file
type OutputInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}
