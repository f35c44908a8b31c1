package models

type MessageType int

const (
	Program MessageType = iota
	Hint
)

// Message is a banner line shown above the form
type Message struct {
	Content string
	Type    MessageType
}
