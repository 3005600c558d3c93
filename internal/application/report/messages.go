package report

// Outbound actions
const (
	ActionQuit            = "quit"
	ActionKeyDown         = "key_down"
	ActionKeyUp           = "key_up"
	ActionMouseButtonDown = "mouse_button_down"
	ActionMouseButtonUp   = "mouse_button_up"
	ActionMouseMotion     = "mouse_motion"
	ActionHover           = "hover"
)

// QuitMessage is sent when the window is closed
type QuitMessage struct {
	Action string `json:"action"`
}

// KeyMessage is sent for key presses and releases
type KeyMessage struct {
	Action  string `json:"action"`
	Keycode string `json:"keycode"`
}

// ButtonMessage is sent for pointer button presses and releases
type ButtonMessage struct {
	Action string `json:"action"`
	Button string `json:"button"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// MotionMessage is sent when the pointer moves
type MotionMessage struct {
	Action string `json:"action"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// HoverMessage is sent while the pointer is inside a sprite's bounding box
type HoverMessage struct {
	Action string `json:"action"`
	Sprite string `json:"sprite"`
}
