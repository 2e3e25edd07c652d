package deps

import (
	"fmt"
	"strings"

	"clipflow/internal/config"
)

// EnhanceRequirements lists the binaries the enhancement role executes.
func EnhanceRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Workers.FFmpegBinary,
			Description: "Applies the enhancement filter chain",
		},
	}
}

// MetadataRequirements lists the binaries the metadata role executes.
func MetadataRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFprobe",
			Command:     cfg.Workers.FFprobeBinary,
			Description: "Probes stream properties for the descriptor",
		},
	}
}

// Verify checks the requirements and returns an error naming every missing
// required binary.
func Verify(requirements []Requirement) error {
	missing := MissingRequired(CheckBinaries(requirements))
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for _, status := range missing {
		names = append(names, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
	}
	return fmt.Errorf("missing required binaries: %s", strings.Join(names, ", "))
}
