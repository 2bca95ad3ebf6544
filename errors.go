package tex2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	ErrEmptyHTML          = errors.New("HTML content cannot be empty")
	ErrSnapshotPath       = errors.New("invalid snapshot path")
	ErrNilCompileCallback = errors.New("compile callback cannot be nil")
)
