// Package screens composes the shell's screens from view nodes and
// registers them in a route table.
//
// Screens never hold the Navigator. Buttons carry plain action values
// (router.Navigate, router.Back, LoginSubmitted, RetryImage, NoOp) which the
// shell hands to Reduce on the UI loop.
//
// Routes:
//
//	login     email and password form
//	register  placeholder linking back to login
//	home      hero playlist, track list, now-playing card, bottom bar (start)
//	search    placeholder with bottom bar
//	library   placeholder with bottom bar
package screens
