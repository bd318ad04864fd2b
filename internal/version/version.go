package version

// Injected at build time with -ldflags "-X .../internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Info returns the version, followed by commit and build date when known.
func Info() string {
	switch {
	case Commit != "" && BuildDate != "":
		return Version + " (" + Commit + ", built " + BuildDate + ")"
	case Commit != "":
		return Version + " (" + Commit + ")"
	default:
		return Version
	}
}
