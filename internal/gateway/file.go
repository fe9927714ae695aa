package gateway

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/selatcheck/dashboard/internal/models"
)

// FileUpload carries everything the spreadsheet-ingestion form submits.
type FileUpload struct {
	FileName string
	Status   string
	RowCount int
	Uploader string
	Tags     []string
	Content  io.Reader
}

func (c *Client) FetchFiles(ctx context.Context, token string) Result[[]models.FileUploadRecord] {
	return request[[]models.FileUploadRecord](ctx, c, http.MethodGet, "/api/file", token, nil)
}

// UploadFile submits the spreadsheet as multipart form data. Field names
// follow the backend's ingestion contract.
func (c *Client) UploadFile(ctx context.Context, token string, upload FileUpload) Result[models.FileUploadRecord] {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"fileName":   upload.FileName,
		"fileStatus": upload.Status,
		"rowCount":   strconv.Itoa(upload.RowCount),
		"uploadedBy": upload.Uploader,
		"tags":       strings.Join(upload.Tags, ","),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fail[models.FileUploadRecord](FallbackMessage)
		}
	}

	part, err := writer.CreateFormFile("file", upload.FileName)
	if err != nil {
		return fail[models.FileUploadRecord](FallbackMessage)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return fail[models.FileUploadRecord](FallbackMessage)
	}
	if err := writer.Close(); err != nil {
		return fail[models.FileUploadRecord](FallbackMessage)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/file/upload", &body)
	if err != nil {
		return fail[models.FileUploadRecord](FallbackMessage)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fail[models.FileUploadRecord](FallbackMessage)
	}
	defer resp.Body.Close()

	return decode[models.FileUploadRecord](resp)
}
