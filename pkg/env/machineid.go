package env

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// FallbackID is used when the machine ID can't be read.
const FallbackID = "rcio"

// MachineID retrieves the unique ID identifying the machine.
func MachineID() string {
	id, err := machineid.ProtectedID("rcio")
	if err != nil {
		glog.Warningf("machine id unavailable, using %q: %v", FallbackID, err)
		return FallbackID
	}
	return id[:12]
}
