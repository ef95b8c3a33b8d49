package service

// DriveServiceInterface defines the contract for report uploads
type DriveServiceInterface interface {
	UploadReport(name string, data []byte) (fileID string, link string, err error)
}
