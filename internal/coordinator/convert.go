package coordinator

import (
	"time"

	"clipflow/internal/api"
	"clipflow/internal/registry"
)

func toAPIVideo(record *registry.Record) api.Video {
	video := api.Video{
		Name:             record.Name,
		Enhanced:         record.Enhanced,
		MetadataComplete: record.MetadataExtracted,
		Metadata:         record.Metadata,
	}
	if !record.CreatedAt.IsZero() {
		video.CreatedAt = record.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !record.UpdatedAt.IsZero() {
		video.UpdatedAt = record.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return video
}
