// Package gateway receives named journal requests from the
// presentation layer and forwards them to the store.
//
// Each request name maps 1:1 to a store operation plus a
// serialization transform: structured content is encoded to text on
// the way in and decoded back out on reads, with malformed stored
// text recovered to an empty structure rather than failing the read.
// The gateway also mints journal ids at creation time and hosts the
// media-import requests (select-image, select-video) behind the
// picker collaborator.
package gateway
