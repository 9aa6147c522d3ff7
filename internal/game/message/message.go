// Package message defines the output surface of the simulation: channelled,
// fire-and-forget text messages whose ordering matters only within a single
// move resolution.
package message

// Channel classifies a message for display purposes.
type Channel uint8

const (
	Plain Channel = iota
	Warn
	Danger
	Duration
	MonsterDamage
	Sound
)

func (c Channel) String() string {
	switch c {
	case Plain:
		return "plain"
	case Warn:
		return "warn"
	case Danger:
		return "danger"
	case Duration:
		return "duration"
	case MonsterDamage:
		return "monster-damage"
	case Sound:
		return "sound"
	}
	return "unknown"
}

// Messenger receives player-facing messages. Implementations must not block.
type Messenger interface {
	Emit(text string, channel Channel)
}

// Entry is one recorded message.
type Entry struct {
	Text    string
	Channel Channel
}

// Buffer is a Messenger that records everything it receives, in order. It
// backs both the simulator's output loop and the movement tests.
type Buffer struct {
	entries []Entry
}

// Emit appends the message to the buffer.
func (b *Buffer) Emit(text string, channel Channel) {
	b.entries = append(b.entries, Entry{Text: text, Channel: channel})
}

// Entries returns the recorded messages in emission order.
func (b *Buffer) Entries() []Entry {
	return b.entries
}

// Texts returns just the message texts in emission order.
func (b *Buffer) Texts() []string {
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Text
	}
	return out
}

// Reset discards all recorded messages.
func (b *Buffer) Reset() {
	b.entries = nil
}
