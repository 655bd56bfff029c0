// ABOUTME: Version and product information
// ABOUTME: Shown in the about panel and advertised over mDNS
package version

const (
	Version      = "1.0.1"
	Product      = "Jingle Box"
	Manufacturer = "shampuan"
	License      = "GNU GPLv3"
)

// String returns "Jingle Box 1.0.1"
func String() string {
	return Product + " " + Version
}
