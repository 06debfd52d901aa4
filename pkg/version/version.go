package version

// Version is the current version of shelfmark. It is set at build time via
// ldflags.
var Version = "development"
