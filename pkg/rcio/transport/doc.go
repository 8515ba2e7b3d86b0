// Package transport exchanges register access packets with the
// coprocessor over a byte stream.
//
// The protocol is single-requester: one request frame is written and the
// response frame of the same size is read back before the next request.
// A Transport holds no per-transaction state between calls, but it is not
// safe for concurrent use; callers serialize access.
package transport
