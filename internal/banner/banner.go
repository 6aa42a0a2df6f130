// Package banner renders the startup banner.
package banner

import "fmt"

// Banner returns the startup banner with the given version string.
func Banner(version string) string {
	return fmt.Sprintf(`
               _   _
 ___ ___ _ __ | |_(_)_   _____  ___
/ __/ _ \ '_ \| __| \ \ / / _ \/ __|
\__ \  __/ | | | |_| |\ V /  __/ (__
|___/\___|_| |_|\__|_| \_/ \___|\___|  %s

`, version)
}
