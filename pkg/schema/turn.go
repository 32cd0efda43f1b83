package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Role of the author of a turn
type Role string

// Turn is one message in a conversation
type Turn struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// SystemTurn returns a system turn with the given instruction
func SystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content}
}

// UserTurn returns a user turn with the given prompt
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn returns an assistant turn with the given reply
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Valid returns true if the role is one of system, user or assistant
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// CloneTurns returns a copy of turns which shares no storage with the
// original. A nil slice is returned as an empty one, so it is encoded as "[]"
func CloneTurns(turns []Turn) []Turn {
	result := make([]Turn, len(turns))
	copy(result, turns)
	return result
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Turn) String() string {
	return types.Stringify(t)
}
