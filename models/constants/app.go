package constants

const (
	ExternalName = "Status Tracker"
	Version      = "1.0.0"
)
