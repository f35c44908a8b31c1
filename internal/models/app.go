package models

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Messages       []Message // Banner lines from core
	Form           FormState // Last state pushed by core
	Status         string    // Status bar text
	LoadingDots    int       // Animation counter for loading dots
	Width          int       // Terminal width
	Height         int       // Terminal height
	ServiceReady   bool      // Whether a generator is configured
	PendingWarning string    // Blocking warning, dismissed by any key
}
