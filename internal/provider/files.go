package provider

import (
	"context"

	"github.com/selatcheck/dashboard/internal/gateway"
	"github.com/selatcheck/dashboard/internal/models"
)

// UploadFile submits a spreadsheet through the gateway and records the
// backend's registry entry. The processing status that follows arrives
// over the push channel, not from this call.
func (p *Provider) UploadFile(ctx context.Context, upload gateway.FileUpload) (bool, string) {
	release, err := p.begin("file", 0)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.UploadFile(ctx, p.token, upload)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.files = append(p.files, res.Data)
	p.mu.Unlock()
	return true, successMessage(res.Message, "File uploaded.")
}

// ApplyFileStatus folds one push notification into the file table. The
// channel delivers at least once, so the newest status is applied
// unconditionally: a duplicate converges to the same state and an
// unknown id gains a stub row that the next full re-fetch fills in.
func (p *Provider) ApplyFileStatus(fileID int64, status, downloadLink string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.files {
		if p.files[i].ID == fileID {
			p.files[i].Status = status
			if downloadLink != "" {
				p.files[i].DownloadLink = downloadLink
			}
			return
		}
	}

	p.files = append(p.files, models.FileUploadRecord{
		ID:           fileID,
		Status:       status,
		DownloadLink: downloadLink,
	})
}
