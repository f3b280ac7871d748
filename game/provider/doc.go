// Package provider implements map sources for the game service: the
// remote island generator over HTTP and payload files on disk.
//
// The generator answers with an envelope:
//
//	{"success": true, "message": "", "data": {"islandIds": [[..]], ...}}
//
// An unsuccessful envelope, a non-200 status or a payload that fails
// validation is reported as an error wrapping service.ErrFetch.
package provider
