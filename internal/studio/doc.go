// Package studio holds the project submission and listing state machine.
//
// All state lives on the Bubble Tea Update loop: methods on Studio, Listing
// and Intake must only be called from that loop (or from a single goroutine
// in headless use). Network calls run inside the tea.Cmd functions returned
// here and report back as messages, which are the only suspension points.
package studio
