// Package util provides generic slice, map, and pointer helpers shared
// across speakerkit packages.
package util
