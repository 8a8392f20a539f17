package team

import "fmt"

// Team is one of the 32 NFL franchises. Reference data: seeded
// administratively, never mutated by end users.
type Team struct {
	ID           string
	Name         string
	Abbreviation string
	LogoURL      string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
