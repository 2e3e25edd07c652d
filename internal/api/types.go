package api

// Event statuses pushed to observers. Each names the transition that just
// fired, not an aggregate lifecycle state.
const (
	StatusEnhanced          = "enhanced"
	StatusMetadataExtracted = "metadata_extracted"
)

// Descriptor is the open-ended key/value record the metadata role produces.
// The pipeline treats it as opaque and forwards it verbatim to observers.
type Descriptor map[string]any

// Event is the JSON object multicast to every connected observer. Metadata is
// null unless Status is StatusMetadataExtracted.
type Event struct {
	Filename string     `json:"filename"`
	Status   string     `json:"status"`
	Metadata Descriptor `json:"metadata"`
}

// UploadResponse acknowledges a stored upload.
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// EnhancementReport is the internal callback body the enhancement worker posts
// when its transformation reaches a terminal outcome.
type EnhancementReport struct {
	VideoName string `json:"video_name"`
}

// MetadataReport is the internal callback body carrying the extracted
// descriptor.
type MetadataReport struct {
	VideoName string     `json:"video_name"`
	Metadata  Descriptor `json:"metadata"`
}

// Video describes a registry entry in a transport-friendly format.
type Video struct {
	Name             string     `json:"name"`
	Enhanced         bool       `json:"enhanced"`
	MetadataComplete bool       `json:"metadata_extracted"`
	Metadata         Descriptor `json:"metadata,omitempty"`
	CreatedAt        string     `json:"created_at,omitempty"`
	UpdatedAt        string     `json:"updated_at,omitempty"`
}

// VideoListResponse wraps a collection of registry entries.
type VideoListResponse struct {
	Videos []Video `json:"videos"`
}

// VideoResponse wraps a single registry entry.
type VideoResponse struct {
	Video Video `json:"video"`
}

// RegistrySummary aggregates registry counts per lifecycle bucket.
type RegistrySummary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Partial  int `json:"partial"`
	Complete int `json:"complete"`
}

// StatusResponse aggregates coordinator runtime information.
type StatusResponse struct {
	Running   bool            `json:"running"`
	PID       int             `json:"pid"`
	Observers int             `json:"observers"`
	Channel   string          `json:"channel"`
	Registry  RegistrySummary `json:"registry"`
}

// AckResponse acknowledges an internal callback.
type AckResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a transport-level failure message.
type ErrorResponse struct {
	Error string `json:"error"`
}
