package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/selatcheck/dashboard/internal/dto"
	"github.com/selatcheck/dashboard/internal/gateway"
	"github.com/selatcheck/dashboard/internal/listview"
	"github.com/selatcheck/dashboard/internal/middleware"
	"github.com/selatcheck/dashboard/internal/models"
	"github.com/selatcheck/dashboard/internal/provider"
	"github.com/selatcheck/dashboard/internal/session"
	"github.com/selatcheck/dashboard/internal/validate"
)

type FileHandler struct {
	registry *provider.Registry
	sessions *session.Manager
}

func NewFileHandler(registry *provider.Registry, sessions *session.Manager) *FileHandler {
	return &FileHandler{registry: registry, sessions: sessions}
}

// ListFiles pages the file registry. Statuses in the window reflect the
// latest push-channel notification, not a fresh backend read.
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	p, ok := h.registry.Lookup(middleware.SessionID(c))
	if !ok {
		return sessionGone(c)
	}
	return c.JSON(listPage(c, p.Files(), listview.MatchFields(
		func(f models.FileUploadRecord) string { return f.FileName },
		func(f models.FileUploadRecord) string { return f.UploadedBy },
	)))
}

// Upload forwards the spreadsheet to the backend's ingestion endpoint.
// The upload starts in the Unprocessed state; later transitions arrive
// over the push channel.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	sessionID := middleware.SessionID(c)
	p, ok := h.registry.Lookup(sessionID)
	if !ok {
		return sessionGone(c)
	}
	ident, ok := h.sessions.Resolve(sessionID)
	if !ok {
		return sessionGone(c)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "A file is required.",
		})
	}

	fileName := c.FormValue("file_name")
	if fileName == "" {
		fileName = header.Filename
	}
	fields := validate.FieldErrors{}
	fields.Require("file_name", fileName)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	rowCount := parseFormInt(c.FormValue("row_count"))

	var tags []string
	if form, err := c.MultipartForm(); err == nil {
		tags = form.Value["tags"]
	}

	content, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "The file could not be read.",
		})
	}
	defer content.Close()

	done, message := p.UploadFile(c.UserContext(), gateway.FileUpload{
		FileName: fileName,
		Status:   models.FileStatusUnprocessed,
		RowCount: rowCount,
		Uploader: ident.Name,
		Tags:     tags,
		Content:  content,
	})
	if !done {
		return mutationFailed(c, message)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: message})
}

// Refresh forces a full re-read of the file registry, the fallback for
// anything the push channel missed.
func (h *FileHandler) Refresh(c *fiber.Ctx) error {
	p, ok := h.registry.Lookup(middleware.SessionID(c))
	if !ok {
		return sessionGone(c)
	}
	done, message := p.RefreshFiles(c.UserContext())
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: "File list refreshed."})
}

func parseFormInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
