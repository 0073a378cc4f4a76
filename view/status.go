package view

// FetchStatus is the lifecycle of the product list request.
type FetchStatus string

const (
	// FetchLoading is the state before the first fetch resolves.
	FetchLoading FetchStatus = "loading"

	// FetchReady means a product list is available for rendering.
	FetchReady FetchStatus = "ready"

	// FetchError means the last fetch failed; no table is rendered.
	FetchError FetchStatus = "error"
)

// String implements fmt.Stringer.
func (s FetchStatus) String() string {
	return string(s)
}

// HealthStatus is the tri-state API health indicator.
type HealthStatus string

const (
	// HealthChecking is the state before the probe resolves.
	HealthChecking HealthStatus = "checking"

	// HealthOnline means the health endpoint answered with a 2xx status.
	HealthOnline HealthStatus = "online"

	// HealthOffline means the probe failed or got a non-2xx status.
	HealthOffline HealthStatus = "offline"
)

// String implements fmt.Stringer.
func (s HealthStatus) String() string {
	return string(s)
}

// Label returns the indicator text shown next to the health dot.
func (s HealthStatus) Label() string {
	switch s {
	case HealthOnline:
		return "API Online"
	case HealthOffline:
		return "API Offline"
	default:
		return "Checking API..."
	}
}

// Color returns the indicator color name.
func (s HealthStatus) Color() string {
	switch s {
	case HealthOnline:
		return "green"
	case HealthOffline:
		return "red"
	default:
		return "gray"
	}
}
