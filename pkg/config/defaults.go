package config

// Scan defaults.
const (
	DefaultScanPath         = "."
	DefaultScanMaxDepth     = -1
	DefaultScanTopN         = 10
	DefaultScanWorkers      = 0
	DefaultScanSkipVendored = false
)

// Backend defaults.
const (
	DefaultBackendKind      = "exec"
	DefaultBackendGitBinary = "git"
)

// Catalog defaults.
const (
	DefaultCatalogSource = "bundled"
	DefaultCatalogFile   = ""
)

// Output defaults.
const (
	DefaultOutputSVG     = "radar.svg"
	DefaultOutputHTML    = ""
	DefaultOutputFormat  = "text"
	DefaultOutputWidth   = 640
	DefaultOutputHeight  = 640
	DefaultOutputTheme   = "light"
	DefaultOutputNoColor = false
)

// Logging defaults.
const (
	DefaultLoggingLevel = "warn"
	DefaultLoggingJSON  = false
)

// Telemetry defaults.
const (
	DefaultTelemetryOTLPEndpoint = ""
	DefaultTelemetryOTLPInsecure = false
	DefaultTelemetryOTLPHeaders  = ""
	DefaultTelemetryMetricsFile  = ""
)
