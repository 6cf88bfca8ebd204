// Package models defines the records exchanged with the clinic backend and
// the small helpers the CLI needs to render and edit them.
//
// Typed models exist for the resources with a stable shape (patients, staff,
// therapists, team members, branches, chat history). Lookup resources whose
// fields differ between deployments are decoded into Record, which resolves
// common field aliases on read.
package models
