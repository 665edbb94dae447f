package statemachine

import (
	"errors"
	"strings"

	"homechef-api/models"
)

// Actor identifies who is driving a transition
type Actor string

const (
	ActorChef  Actor = "chef"
	ActorAdmin Actor = "admin"
	ActorUser  Actor = "user"
)

// ErrInvalidTransition is wrapped by every CanTransition failure
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor Actor              `json:"actor"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Chef accepts or declines a fresh order
	{From: models.OrderPending, To: models.OrderAccepted, Actor: ActorChef},
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorChef},
	// The customer may withdraw before the chef accepts
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorUser},
	// Chef hands the meal over
	{From: models.OrderAccepted, To: models.OrderDelivered, Actor: ActorChef},
	// Admin can perform any chef transition
	{From: models.OrderPending, To: models.OrderAccepted, Actor: ActorAdmin},
	{From: models.OrderPending, To: models.OrderCancelled, Actor: ActorAdmin},
	{From: models.OrderAccepted, To: models.OrderDelivered, Actor: ActorAdmin},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	nexts := []models.OrderStatus{}
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.Join(ErrInvalidTransition, errors.New(
		string(from)+" → "+string(to)+" is not allowed for actor '"+string(actor)+"'. "+
			"Valid transitions from "+string(from)+" are: "+describeValidFrom(from),
	))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
