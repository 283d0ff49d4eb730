// Package export renders journal entries to HTML via an intermediate
// markdown form, for the share/export surface of the app.
package export
