// Package matcher implements the note pattern engine.
//
// The engine keeps two pieces of rolling state, fed one event at a time:
//
//   - chord state: the last on/off seen for every note
//   - history: a bounded log of note-on events, oldest evicted first
//
// After each event every sequence subscription is tested against the tail of
// the history, then every chord subscription is tested against the chord
// state, both in registration order.
//
// Chords are superset matches and fire again on every event that leaves them
// fully held. A sequence match consumes the history it matched, so neither it
// nor any other sequence can fire again on those same notes; the next match
// needs fresh note-on events. Within a single event at most one sequence can
// fire, and the earliest registered one wins.
package matcher
