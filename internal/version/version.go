// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Desktop front-end, PNG snapshots, persisted layer toggles
// 0.2.0 - Squadron station overlay, journey colour legend, pulse animation
// 0.1.0 - Initial release: terminal star map, pan/zoom, hover tooltips
