// Package shortrange holds the pieces used next to the dispersion potential at
// short separations: the short-long attenuation switch, the short-range
// energy forms, and the reductions that turn four points into the single
// distance parameter those functions take.
package shortrange
