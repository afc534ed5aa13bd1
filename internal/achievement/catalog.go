// Package achievement holds the achievement catalog, the stateless unlock
// rules and the persisted unlock state.
package achievement

// ID identifies an achievement.
type ID string

const (
	QuickDraw           ID = "quick_draw"
	LightningFast       ID = "lightning_fast"
	ConsistentPerformer ID = "consistent_performer"
	CenturyClub         ID = "century_club"
	DedicatedPlayer     ID = "dedicated_player"
)

// Rule constants.
const (
	QuickDrawMS       = 200
	LightningFastMS   = 150
	ConsistencyWindow = 10
	ConsistencyMeanMS = 250
	CenturyAttempts   = 100
	DedicatedAttempts = 500
)

// Achievement describes one entry of the catalog.
type Achievement struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var catalog = map[ID]Achievement{
	QuickDraw:           {ID: QuickDraw, Name: "Quick Draw", Description: "React in under 200ms", Icon: "⚡"},
	LightningFast:       {ID: LightningFast, Name: "Lightning Fast", Description: "React in under 150ms", Icon: "🔥"},
	ConsistentPerformer: {ID: ConsistentPerformer, Name: "Consistent Performer", Description: "Average under 250ms over 10 attempts", Icon: "🎯"},
	CenturyClub:         {ID: CenturyClub, Name: "Century Club", Description: "Complete 100 attempts", Icon: "💯"},
	DedicatedPlayer:     {ID: DedicatedPlayer, Name: "Dedicated Player", Description: "Complete 500 attempts", Icon: "🏆"},
}

// All returns the catalog in display order.
func All() []Achievement {
	out := make([]Achievement, 0, len(catalog))
	for _, id := range order() {
		out = append(out, catalog[id])
	}
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id ID) (Achievement, bool) {
	a, ok := catalog[id]
	return a, ok
}

func order() []ID {
	return []ID{QuickDraw, LightningFast, ConsistentPerformer, CenturyClub, DedicatedPlayer}
}

// View is the ledger state the rules look at: the recorded difficulty's
// lifetime attempt count and its retained times, oldest first.
type View struct {
	TotalAttempts int
	RecentTimes   []int
}

// Evaluate returns every achievement whose rule holds for the latest
// reaction and the ledger view. It does not look at unlock state.
func Evaluate(latestMS int, v View) []ID {
	var earned []ID

	// Speed
	if latestMS <= QuickDrawMS {
		earned = append(earned, QuickDraw)
	}
	if latestMS <= LightningFastMS {
		earned = append(earned, LightningFast)
	}

	// Consistency needs a full window.
	if n := len(v.RecentTimes); n >= ConsistencyWindow {
		sum := 0
		for _, t := range v.RecentTimes[n-ConsistencyWindow:] {
			sum += t
		}
		if float64(sum)/ConsistencyWindow <= ConsistencyMeanMS {
			earned = append(earned, ConsistentPerformer)
		}
	}

	// Volume
	if v.TotalAttempts >= CenturyAttempts {
		earned = append(earned, CenturyClub)
	}
	if v.TotalAttempts >= DedicatedAttempts {
		earned = append(earned, DedicatedPlayer)
	}

	return earned
}
