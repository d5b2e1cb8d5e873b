// Package server exposes documents to display clients over a Unix socket.
//
// The protocol is JSON lines. Each request is one action object:
//
//	{"action":"cursor.moveRight","count":3}
//	{"action":"edit.insert","args":{"text":"hello"}}
//
// and each reply is one dispatcher.Response object. The first request on
// a connection must be file.open with a "path" argument; the server gives
// every connection its own client id and document, and closes the
// document when the connection ends.
//
// When file watching is enabled the server follows each open file with
// fsnotify so file.status can report writes made by other programs.
package server
