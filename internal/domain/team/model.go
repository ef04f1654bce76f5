package team

import (
	"fmt"
	"strings"
	"time"
)

// Group is the label of a round-robin pool inside a tournament.
type Group string

const (
	GroupA Group = "A"
	GroupB Group = "B"
	GroupC Group = "C"
)

// Groups is the fixed set of group labels, in display order.
var Groups = []Group{GroupA, GroupB, GroupC}

// ParseGroup normalizes a label and reports whether it is one of Groups.
func ParseGroup(raw string) (Group, bool) {
	candidate := Group(strings.ToUpper(strings.TrimSpace(raw)))
	for _, g := range Groups {
		if g == candidate {
			return g, true
		}
	}
	return "", false
}

func (g Group) String() string {
	return string(g)
}

// Participant is one player registered under a team.
type Participant struct {
	Name        string
	PhoneNumber string
}

// Team is a registered pair of players inside one tournament.
// Group is empty while the team is unassigned.
type Team struct {
	ID           string
	TournamentID string
	Name         string
	PhoneNumber  string
	Group        Group
	OwnerID      string
	Participants []Participant
	CreatedAt    time.Time
}

func (t Team) Assigned() bool {
	return t.Group != ""
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.TournamentID == "" {
		return fmt.Errorf("team tournament id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Group != "" {
		if _, ok := ParseGroup(string(t.Group)); !ok {
			return fmt.Errorf("team group %q is not a known group", t.Group)
		}
	}
	for _, p := range t.Participants {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("participant name is required")
		}
	}

	return nil
}

// NameKey is the comparison key for team name uniqueness within a tournament.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Assignment places one team into one group.
type Assignment struct {
	TeamID string
	Group  Group
}

// Clone returns a copy that shares no slices with t.
func (t Team) Clone() Team {
	copied := t
	copied.Participants = append([]Participant(nil), t.Participants...)
	return copied
}
