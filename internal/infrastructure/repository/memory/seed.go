package memory

import "github.com/JamesM813/NFL-Locked-In/internal/domain/team"

// logoBaseURL is the scores feed's public logo CDN; team IDs double as the
// CDN slug, so logos follow from the ID.
const logoBaseURL = "https://a.espncdn.com/i/teamlogos/nfl/500/"

// SeedTeams returns the 32 franchises. IDs are stable lowercase
// abbreviations; display names must match the scores feed so schedule sync
// can map events onto the registry.
func SeedTeams() []team.Team {
	teams := []team.Team{
		{ID: "ari", Name: "Arizona Cardinals", Abbreviation: "ARI"},
		{ID: "atl", Name: "Atlanta Falcons", Abbreviation: "ATL"},
		{ID: "bal", Name: "Baltimore Ravens", Abbreviation: "BAL"},
		{ID: "buf", Name: "Buffalo Bills", Abbreviation: "BUF"},
		{ID: "car", Name: "Carolina Panthers", Abbreviation: "CAR"},
		{ID: "chi", Name: "Chicago Bears", Abbreviation: "CHI"},
		{ID: "cin", Name: "Cincinnati Bengals", Abbreviation: "CIN"},
		{ID: "cle", Name: "Cleveland Browns", Abbreviation: "CLE"},
		{ID: "dal", Name: "Dallas Cowboys", Abbreviation: "DAL"},
		{ID: "den", Name: "Denver Broncos", Abbreviation: "DEN"},
		{ID: "det", Name: "Detroit Lions", Abbreviation: "DET"},
		{ID: "gb", Name: "Green Bay Packers", Abbreviation: "GB"},
		{ID: "hou", Name: "Houston Texans", Abbreviation: "HOU"},
		{ID: "ind", Name: "Indianapolis Colts", Abbreviation: "IND"},
		{ID: "jax", Name: "Jacksonville Jaguars", Abbreviation: "JAX"},
		{ID: "kc", Name: "Kansas City Chiefs", Abbreviation: "KC"},
		{ID: "lac", Name: "Los Angeles Chargers", Abbreviation: "LAC"},
		{ID: "lar", Name: "Los Angeles Rams", Abbreviation: "LAR"},
		{ID: "lv", Name: "Las Vegas Raiders", Abbreviation: "LV"},
		{ID: "mia", Name: "Miami Dolphins", Abbreviation: "MIA"},
		{ID: "min", Name: "Minnesota Vikings", Abbreviation: "MIN"},
		{ID: "ne", Name: "New England Patriots", Abbreviation: "NE"},
		{ID: "no", Name: "New Orleans Saints", Abbreviation: "NO"},
		{ID: "nyg", Name: "New York Giants", Abbreviation: "NYG"},
		{ID: "nyj", Name: "New York Jets", Abbreviation: "NYJ"},
		{ID: "phi", Name: "Philadelphia Eagles", Abbreviation: "PHI"},
		{ID: "pit", Name: "Pittsburgh Steelers", Abbreviation: "PIT"},
		{ID: "sea", Name: "Seattle Seahawks", Abbreviation: "SEA"},
		{ID: "sf", Name: "San Francisco 49ers", Abbreviation: "SF"},
		{ID: "tb", Name: "Tampa Bay Buccaneers", Abbreviation: "TB"},
		{ID: "ten", Name: "Tennessee Titans", Abbreviation: "TEN"},
		{ID: "was", Name: "Washington Commanders", Abbreviation: "WAS"},
	}
	for i := range teams {
		teams[i].LogoURL = logoBaseURL + teams[i].ID + ".png"
	}
	return teams
}
