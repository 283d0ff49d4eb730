// Package media imports image and video files into journal entries.
// The native file chooser is an external collaborator behind the
// Picker interface; this package owns the extension allowlists and
// the data-URL encoding of picked files.
package media
