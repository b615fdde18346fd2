package scoringdomain

import "fmt"

// FormTeams pairs consecutive roster entries: players 1 and 2 form Team 1, 3 and 4 Team 2.
func FormTeams(players []Player) ([]Team, error) {
	if len(players) == 0 || len(players)%2 != 0 {
		return nil, fmt.Errorf("%w: cannot pair %d players", ErrInvalidRoster, len(players))
	}
	teams := make([]Team, 0, len(players)/2)
	for i := 0; i < len(players); i += 2 {
		n := i/2 + 1
		teams = append(teams, Team{
			ID:      fmt.Sprintf("team-%d", n),
			Name:    fmt.Sprintf("Team %d", n),
			Players: [2]Player{players[i], players[i+1]},
		})
	}
	return teams, nil
}

// ValidateTeams checks that teams partition the roster into pairs: every member is on the
// roster, appears on one team only and every roster player is on a team.
func ValidateTeams(teams []Team, players []Player) error {
	onRoster := make(map[string]struct{}, len(players))
	for _, p := range players {
		onRoster[p.ID] = struct{}{}
	}
	placed := make(map[string]string, len(players))
	teamIDs := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		if team.ID == "" {
			return fmt.Errorf("%w: team %q has no id", ErrInvalidRoster, team.Name)
		}
		if _, dup := teamIDs[team.ID]; dup {
			return fmt.Errorf("%w: duplicate team id %q", ErrInvalidRoster, team.ID)
		}
		teamIDs[team.ID] = struct{}{}
		for _, member := range team.Players {
			if _, ok := onRoster[member.ID]; !ok {
				return fmt.Errorf("%w: team %q member %q is not on the roster", ErrInvalidRoster, team.ID, member.ID)
			}
			if other, dup := placed[member.ID]; dup {
				return fmt.Errorf("%w: player %q is on teams %q and %q", ErrInvalidRoster, member.ID, other, team.ID)
			}
			placed[member.ID] = team.ID
		}
	}
	for _, p := range players {
		if _, ok := placed[p.ID]; !ok {
			return fmt.Errorf("%w: player %q is not on a team", ErrInvalidRoster, p.ID)
		}
	}
	return nil
}
