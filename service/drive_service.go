package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client   *drive.Service
	folderID string
}

// NewDriveService creates a new DriveService instance.
// credentialsPath should be the path to the Service Account JSON file;
// folderID is the Drive folder reports are uploaded into (may be empty).
func NewDriveService(credentialsPath, folderID string) (*DriveService, error) {
	ctx := context.Background()

	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// UploadReport uploads a CSV report to Drive and returns the file ID and
// a webview link.
func (ds *DriveService) UploadReport(name string, data []byte) (string, string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: "text/csv",
	}
	if ds.folderID != "" {
		file.Parents = []string{ds.folderID}
	}

	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id, webViewLink").
		Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to upload report: %w", err)
	}

	log.Printf("✅ UploadReport: %s uploaded to Drive (id=%s)", name, created.Id)
	return created.Id, created.WebViewLink, nil
}
