// Package layout writes and reads whole records: a base asset or collection,
// optionally followed by a plugin header, the plugin payloads and the plugin
// registry that indexes them.
//
// A record with plugins is laid out as
//
//	base | header(3, registry offset) | plugin 0 | ... | plugin n-1 | registry
//
// Every offset in the header and registry is absolute from the start of the
// buffer. The header sits right after the base record but its content is only
// known once the registry has been placed, so the encoder reserves it, writes
// everything after it and then backfills it.
package layout
