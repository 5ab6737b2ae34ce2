package callflow

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/drelynlikescode26/callflow-assist.Version=...".
var Version = "0.1.0-dev"
