// Package notify turns confirmed store mutations into hub broadcasts.
package notify

import (
	"fmt"
	"unicode/utf8"
)

const snippetLen = 64

// Broadcaster is the hub-side surface the notifier needs.
type Broadcaster interface {
	Broadcast(text string)
}

// Notifier formats a human-readable message per confirmed mutation and hands
// it to the hub. Fire and forget: nothing here can fail the mutation.
type Notifier struct {
	hub Broadcaster
}

// New returns a Notifier broadcasting through hub.
func New(hub Broadcaster) *Notifier {
	return &Notifier{hub: hub}
}

// Created announces a new record. descriptor is the kind's most readable
// field (username, name, text snippet).
func (n *Notifier) Created(kind, descriptor string) {
	n.hub.Broadcast(fmt.Sprintf("%s added: %s", kind, Snippet(descriptor)))
}

// Updated announces a confirmed update.
func (n *Notifier) Updated(kind, descriptor string) {
	n.hub.Broadcast(fmt.Sprintf("%s updated: %s", kind, Snippet(descriptor)))
}

// Deleted announces a confirmed delete. Only the id survives the delete, so
// the message carries it instead of a descriptor.
func (n *Notifier) Deleted(kind string, id int64) {
	n.hub.Broadcast(fmt.Sprintf("%s deleted: ID %d", kind, id))
}

// Snippet truncates long descriptors (comment bodies) for broadcast. The cut
// lands on a rune boundary so the result stays valid UTF-8 for text frames.
func Snippet(s string) string {
	if len(s) <= snippetLen {
		return s
	}
	cut := snippetLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
