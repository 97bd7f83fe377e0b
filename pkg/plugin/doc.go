// Package plugin holds the closed variant families of the record format:
// plugins, plugin authorities, update authorities and royalty rule sets.
//
// Every value is a one-byte tag followed by its payload. Each family has its
// own numbering and a single descriptor table per family drives size,
// decode, skip and naming, so the four can not disagree.
package plugin
