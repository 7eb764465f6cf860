package app

import (
	"fmt"
	"strings"
)

// PipelineType names a documentation pipeline
type PipelineType string

const (
	PipelineCLI PipelineType = "cli"
	PipelineSDK PipelineType = "sdk"
	PipelineAll PipelineType = "all"
)

// AllPipelines lists the pipelines in the order "all" runs them
var AllPipelines = []PipelineType{PipelineCLI, PipelineSDK}

// IsValidPipeline reports whether p names a single pipeline
func IsValidPipeline(p PipelineType) bool {
	for _, known := range AllPipelines {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePipelines turns user-supplied names into pipeline types. No names,
// or "all", selects every pipeline. Duplicates are dropped.
func ParsePipelines(names ...string) ([]PipelineType, error) {
	if len(names) == 0 {
		return AllPipelines, nil
	}

	seen := make(map[PipelineType]bool)
	var out []PipelineType
	for _, name := range names {
		p := PipelineType(strings.ToLower(strings.TrimSpace(name)))
		if p == PipelineAll {
			return AllPipelines, nil
		}
		if !IsValidPipeline(p) {
			return nil, fmt.Errorf("unknown pipeline: %s", name)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}
