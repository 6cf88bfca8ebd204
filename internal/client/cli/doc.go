// Package cli is the clinicadmin command-line console.
//
// Every view of the browser console maps to a cobra command: list views
// become "list <resource>" with the same branch, search and date filters,
// detail and edit forms become "show" and "update". Running without a command
// starts a shell that executes the same command tree line by line.
package cli
