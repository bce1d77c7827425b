package models

// State is a US state (or any top level region) that owns cities.
type State struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// City belongs to exactly one State.
type City struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	StateID int64  `json:"state_id"`
}

// CityWithState is a City joined with the name of its State.
type CityWithState struct {
	City
	StateName string `json:"state"`
}

// Location is the free-text city/state pair submitted with a venue or artist.
type Location struct {
	City  string
	State string
}

// CityVenues groups the venue summaries of a single city.
type CityVenues struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// GroupVenuesByCity returns one group per city, in the order the cities are
// given, including cities without venues.
func GroupVenuesByCity(cities []CityWithState, venues []VenueSummary) []CityVenues {
	byCity := make(map[int64][]VenueSummary, len(cities))
	for _, v := range venues {
		byCity[v.CityID] = append(byCity[v.CityID], v)
	}

	groups := make([]CityVenues, 0, len(cities))
	for _, c := range cities {
		list := byCity[c.ID]
		if list == nil {
			list = []VenueSummary{}
		}
		groups = append(groups, CityVenues{
			City:   c.Name,
			State:  c.StateName,
			Venues: list,
		})
	}
	return groups
}
