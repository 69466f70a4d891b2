package models

// Preferences holds user preferences stored alongside the slots
type Preferences struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// WindowState holds the last known window geometry
type WindowState struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// Document is the current on-disk config format
type Document struct {
	LastOpenedFiles   []string    `json:"lastOpenedFiles"`
	Preferences       Preferences `json:"preferences"`
	WindowState       WindowState `json:"windowState"`
	LastModifiedTimes []float64   `json:"last_modified_times"`
}

// DefaultPreferences returns the preferences written when none were loaded
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:    "default",
		Language: "en",
	}
}

// DefaultWindowState returns the window geometry written when none was loaded
func DefaultWindowState() WindowState {
	return WindowState{
		Width:  800,
		Height: 600,
	}
}
