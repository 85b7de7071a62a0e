package services

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"

	"github.com/duozero/intake-service/internal/utils"
)

// AttachmentService stores intake attachments in a shared Drive folder and
// hands back a link operations can open from the sheet.
type AttachmentService struct {
	drive    *drive.Service
	folderID string
}

func NewAttachmentService(driveSvc *drive.Service, folderID string) *AttachmentService {
	return &AttachmentService{drive: driveSvc, folderID: folderID}
}

// Upload streams the file into the configured folder and returns a view link.
// The file is made link-readable so the sheet cell works for anyone on the
// operations side.
func (s *AttachmentService) Upload(ctx context.Context, filename, mimeType string, content io.Reader) (string, error) {
	meta := &drive.File{
		Name:    filename,
		Parents: []string{s.folderID},
	}

	created, err := s.drive.Files.Create(meta).
		Media(content).
		SupportsAllDrives(true).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive upload: %w", err)
	}

	_, err = s.drive.Permissions.Create(created.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		// Link still resolves for the service account; log and keep going.
		utils.Logger.Warnf("Could not set link sharing on %s: %v", created.Id, err)
	}

	if created.WebViewLink != "" {
		return created.WebViewLink, nil
	}
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view", created.Id), nil
}
