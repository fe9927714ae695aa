package models

import "time"

// File processing states are owned by the backend; the dashboard only
// mirrors whatever status the last notification carried.
const (
	FileStatusUnprocessed = "Unprocessed"
	FileStatusProcessing  = "Processing"
	FileStatusProcessed   = "Processed"
	FileStatusFailed      = "Failed"
)

type FileUploadRecord struct {
	ID           int64     `json:"id"`
	FileName     string    `json:"file_name"`
	UploadedBy   string    `json:"uploaded_by"`
	RowCount     int       `json:"row_count"`
	Status       string    `json:"status"`
	DownloadLink string    `json:"download_link,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
