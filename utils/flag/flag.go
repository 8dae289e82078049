/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
	ByPassAuth    bool
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name reported to logging and tracing")
	flag.BoolVar(&ByPassAuth, "no_auth", false, "set to true to skip bearer token validation, local debugging only")
}

// Parse parses the command line flags. It must be called from main after all
// packages have registered their flags; calling flag.Parse from init breaks
// the -test.* flags registered by the testing package.
func Parse() {
	flag.Parse()
}
