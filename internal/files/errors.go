package files

import "errors"

// Validation and access errors returned by the service. Handlers translate
// them to the wire error strings; everything else surfaces as a server error.
var (
	ErrMissingName     = errors.New("missing name")
	ErrMissingKind     = errors.New("missing type")
	ErrMissingContent  = errors.New("missing data")
	ErrInvalidContent  = errors.New("data is not valid base64")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")

	// ErrNotFound covers both absent entities and entities the caller may
	// not see. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrFolderHasNoContent is returned for content reads on folders.
	ErrFolderHasNoContent = errors.New("a folder doesn't have content")
)
