package replay

// Version is the current replay file format version
const Version = "1.0"

// Message is one inbound snapshot message as it was received
type Message struct {
	At   int64  `json:"at"`   // Milliseconds since the session started
	Data string `json:"data"` // Raw encoded message
}

// ReplayData contains a recorded controller session
type ReplayData struct {
	Version   string    `json:"version"`
	Session   string    `json:"session"`
	StartTime string    `json:"startTime"`
	Messages  []Message `json:"messages"`
}
