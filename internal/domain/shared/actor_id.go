package shared

import "fmt"

// HumanActorID identifies the human player within a session
const HumanActorID = "player"

// ActorID is a value object identifying one actor (the human or an AI opponent)
type ActorID struct {
	value string
}

// NewActorID creates a new ActorID value object
func NewActorID(id string) (ActorID, error) {
	if id == "" {
		return ActorID{}, fmt.Errorf("actor_id cannot be empty")
	}
	return ActorID{value: id}, nil
}

// MustNewActorID creates a new ActorID, panicking on an empty id.
// Loaded opponents always carry an id; see game.Repository.Load.
func MustNewActorID(id string) ActorID {
	actorID, err := NewActorID(id)
	if err != nil {
		panic(err)
	}
	return actorID
}

// Human returns the ActorID of the human player
func Human() ActorID {
	return ActorID{value: HumanActorID}
}

func (a ActorID) Value() string {
	return a.value
}

func (a ActorID) String() string {
	return a.value
}

func (a ActorID) Equals(other ActorID) bool {
	return a.value == other.value
}

// IsHuman reports whether the actor is the human player
func (a ActorID) IsHuman() bool {
	return a.value == HumanActorID
}

func (a ActorID) IsZero() bool {
	return a.value == ""
}
