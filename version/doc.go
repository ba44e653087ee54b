// Package version reports the build version of seqkit binaries.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/seqkit/version.Version=1.0.0" ./cmd/seqdemo
//
// Anything left unset is read from the module's VCS build info.
package version
