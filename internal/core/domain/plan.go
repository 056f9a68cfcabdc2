package domain

// ModuleLoad is one module the application bootstrap has to activate.
type ModuleLoad struct {
	Fragment string `json:"fragment"`
	Module   string `json:"module"`
	Path     string `json:"path"`
	Autoload bool   `json:"autoload,omitempty"`
	Config   any    `json:"config,omitempty"`
}

// FragmentStatus describes how the bootstrap driver treated a fragment.
type FragmentStatus string

const (
	// FragmentLoaded indicates the fragment resolved and contributes modules.
	FragmentLoaded FragmentStatus = "loaded"
	// FragmentIgnored indicates the configuration asked for the fragment to be skipped.
	FragmentIgnored FragmentStatus = "ignored"
	// FragmentMissing indicates an optional fragment failed to resolve and was tolerated.
	FragmentMissing FragmentStatus = "missing"
)

// FragmentReport summarizes a fragment in a load plan.
type FragmentReport struct {
	ID          string         `json:"id"`
	Status      FragmentStatus `json:"status"`
	Fingerprint string         `json:"fingerprint,omitempty"`
	Routes      []string       `json:"routes,omitempty"`
}

// LoadPlan is the outcome of the bootstrap driver: fragments in registration
// order and the modules to activate, fragment by fragment.
type LoadPlan struct {
	Fragments []FragmentReport `json:"fragments"`
	Modules   []ModuleLoad     `json:"modules"`
}
