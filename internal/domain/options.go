package domain

// CommonOptions contains shared options for pipelines and orchestration.
type CommonOptions struct {
	Verbose bool
	DryRun  bool
	Force   bool
	Check   bool
}

// DefaultCommonOptions returns CommonOptions with default values.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{}
}
