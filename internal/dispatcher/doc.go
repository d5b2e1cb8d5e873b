// Package dispatcher routes client actions to handlers and builds the
// responses the server sends back.
//
// # Routing
//
// Action names are namespaced: the prefix before the first dot selects a
// NamespaceHandler ("cursor" handles "cursor.moveDown"). The built-in
// namespaces are cursor, extend, selection, view, edit and file; New
// registers all of them.
//
// # Execution
//
// When an action is dispatched:
//
//  1. The router finds the namespace handler.
//  2. The client's document is locked through editor.Do.
//  3. The handler runs with panic recovery.
//  4. The result's effect decides the response: selection changes scroll
//     the view to follow the primary cursor and answer CursorPosition, or
//     DisplayView if the view moved; text and view changes answer
//     DisplayView; anything else is acknowledged.
//  5. Any error becomes a Failed response carrying its message.
//
// file.open is special: it has no document to run against yet, so the
// dispatcher opens one through the editor and answers FileOpened.
//
// # Usage
//
//	ed := editor.New()
//	d := dispatcher.New(ed, dispatcher.WithLogger(logger))
//
//	client := editor.NewClientID()
//	d.Dispatch(client, action.New("file.open").With("path", "notes.txt"))
//	resp := d.Dispatch(client, action.New("cursor.moveDown").Repeat(3))
package dispatcher
