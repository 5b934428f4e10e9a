package version

// Build holds the build identifier, injected via -ldflags. Default "dev".
var Build = "dev"

// UserAgent identifies checker probes to the gateway.
func UserAgent() string {
	return "Keephy-API-Checker/" + Build
}
