// Package locale filters multi-locale export entities down to the canonical
// set. Every entity exists once per exported language; only the neutral
// "master" variant and one display language are authoritative.
//
// Two distinct predicates are exposed on purpose. The structural listing
// accepts either canonical locale for spaces, while work-page detail lookups
// are display-locale only because the embedded visualization id list is only
// populated on the display-locale record. Merging the two predicates causes
// silent join misses.
package locale

// Filter holds the canonical locale tags for a dataset.
type Filter struct {
	Neutral string
	Display string
}

// Default is the filter used by real portal exports.
var Default = Filter{Neutral: "master", Display: "en"}

// Canonical reports whether lang is either canonical locale.
func (f Filter) Canonical(lang string) bool {
	return lang == f.Neutral || lang == f.Display
}

// DisplayOnly reports whether lang is exactly the display locale.
func (f Filter) DisplayOnly(lang string) bool {
	return lang == f.Display
}

// NeutralOnly reports whether lang is exactly the neutral locale.
func (f Filter) NeutralOnly(lang string) bool {
	return lang == f.Neutral
}
