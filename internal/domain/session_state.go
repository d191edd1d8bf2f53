package domain

type SessionState string

const (
	SessionCreated      SessionState = "created"
	SessionInitializing SessionState = "initializing"
	SessionJoined       SessionState = "joined"
	SessionShuttingDown SessionState = "shutting_down"
	SessionStopped      SessionState = "stopped"
)
