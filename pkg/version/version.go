// Package version provides version information for the oracle-updater application.
package version

// Version is the current version of the oracle-updater application.
const Version = "0.3.1"

// AgentString returns the User-Agent string sent with outbound feed requests.
func AgentString() string {
	return "oracle-updater/v" + Version
}
