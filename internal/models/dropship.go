package models

// DropshipVendors is the fixed list of vendors whose products ship directly
// from a third party. Matching is exact and case-sensitive; the list carries
// both "Larlu" and "LarLu" as they appear in the source data.
var DropshipVendors = []string{
	"Cawley",
	"Visions",
	"Moslow",
	"Larlu",
	"LarLu",
	"Edwards Garment",
	"Cannon Hill",
	"Power Sales",
	"Winning Edge",
}

var dropshipVendorSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(DropshipVendors))
	for _, name := range DropshipVendors {
		set[name] = struct{}{}
	}
	return set
}()

// IsDropshipVendor reports whether name is on the dropship vendor list
func IsDropshipVendor(name string) bool {
	_, ok := dropshipVendorSet[name]
	return ok
}
