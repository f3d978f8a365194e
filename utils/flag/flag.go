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
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name of the service, used for logging and tracing")
}

// ParseFlags must be called from main after all packages registered their
// flags. Calling flag.Parse from an init would break test binaries, which
// register their own flags later.
func ParseFlags() {
	flag.Parse()
}
