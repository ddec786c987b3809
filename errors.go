package nirc

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra data.
var (
	// ErrCogNotLoaded is returned by Unload/Reload when the cog id was
	// never loaded.
	ErrCogNotLoaded = errors.New("nirc: cog not loaded")
	// ErrCogAlreadyLoaded is returned by Load when the cog id is already
	// loaded.
	ErrCogAlreadyLoaded = errors.New("nirc: cog already loaded")
)

// InvalidConfigError is returned by Bot.Start when the bot's configuration
// fails basic validation.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "nirc: invalid configuration: " + e.Reason
}

// CogLoadError wraps a failure that occurred while loading or reloading a
// cog's registration function.
type CogLoadError struct {
	CogID string
	Err   error
}

func (e *CogLoadError) Error() string {
	return fmt.Sprintf("nirc: cog %q failed to load: %v", e.CogID, e.Err)
}

func (e *CogLoadError) Unwrap() error { return e.Err }

// CogUnloadError wraps an error reported while removing a cog's
// registrations; Unload and Reload return it when removeDelta fails.
type CogUnloadError struct {
	CogID string
	Err   error
}

func (e *CogUnloadError) Error() string {
	return fmt.Sprintf("nirc: cog %q failed to unload: %v", e.CogID, e.Err)
}

func (e *CogUnloadError) Unwrap() error { return e.Err }

// DCCConnectError distinguishes the reason a DCC side-channel dial failed.
type DCCConnectError struct {
	TimedOut bool
	Err      error
}

func (e *DCCConnectError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("nirc: dcc connect timed out: %v", e.Err)
	}
	return fmt.Sprintf("nirc: dcc connect failed: %v", e.Err)
}

func (e *DCCConnectError) Unwrap() error { return e.Err }

// DCCReadStallError describes a DCC transfer that received no data for
// longer than its stall timeout. StartTransfer does not return it; it logs
// the stall instead.
type DCCReadStallError struct {
	Received int64
}

func (e *DCCReadStallError) Error() string {
	return fmt.Sprintf("nirc: dcc transfer stalled after %d bytes", e.Received)
}

// DCCSizeMismatchError describes a DCC transfer whose received byte count
// does not match the advertised filesize. StartTransfer logs its message
// rather than returning it.
type DCCSizeMismatchError struct {
	Want, Got int64
}

func (e *DCCSizeMismatchError) Error() string {
	return fmt.Sprintf("nirc: dcc transfer size mismatch: want %d, got %d", e.Want, e.Got)
}
