// Package chatlens extracts normalized conversation transcripts from chat
// application web pages and forwards them to an analysis backend.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package chatlens
