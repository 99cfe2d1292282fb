// Package ui provides the terminal joke browser built on Bubble Tea.
//
// # Layout
//
// The screen is a header bar (app name, API host, loading marker, theme), a
// controls block (search input and category chips), a body, and a footer of
// key hints. The body shows exactly one of: a spinner while a request is in
// flight, the current error, the joke rendered as markdown inside a card, or
// a hint when nothing has been fetched yet.
//
// # Event Flow
//
//  1. Init dispatches a random joke and the category list.
//  2. Each dispatch calls state.Store.Begin on the event loop and returns a
//     command that performs the request in the background.
//  3. The command's resultMsg comes back through Update, which applies it
//     with state.Store.Resolve.
//  4. Every Update re-reads the store snapshot before View runs.
//
// An empty or whitespace search, and picking the "Random (any category)"
// chip, do not dispatch anything.
//
// # Keys
//
//	r        random joke
//	/        focus search, enter submits
//	c        focus categories, j/k to move, enter to fetch
//	y        copy the joke to the clipboard
//	T        cycle theme
//	?        help
//	q        quit
package ui
