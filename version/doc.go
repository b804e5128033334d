// Package version reports the build version of the listing binary.
//
// Set the values at build time with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/listing/version.Version=1.2.3 \
//	  -X github.com/ncobase/listing/version.Branch=main \
//	  -X 'github.com/ncobase/listing/version.BuiltAt=$(date -u +%FT%TZ)'" ./cmd/listing
//
// Unset values fall back to the VCS stamp embedded by the Go toolchain.
package version
