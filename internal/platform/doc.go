// Package platform contains host-facing helpers: filename sanitizing,
// directory handling and opening the destination folder in the system file
// manager.
package platform
