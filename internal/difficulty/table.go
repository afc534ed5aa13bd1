package difficulty

// Table is a read-only lookup of profiles by identifier.
type Table struct {
	profiles map[ID]Profile
	order    []ID
}

// NewTable builds a table from profiles, keeping their order. A later
// profile with the same ID replaces the earlier one in place.
func NewTable(profiles ...Profile) *Table {
	t := &Table{profiles: make(map[ID]Profile, len(profiles))}
	for _, p := range profiles {
		if _, ok := t.profiles[p.ID]; !ok {
			t.order = append(t.order, p.ID)
		}
		t.profiles[p.ID] = p
	}
	return t
}

// Lookup returns the profile for id. Unknown identifiers fall back to
// Normal; if Normal is missing too, the built-in normal profile is used.
func (t *Table) Lookup(id ID) Profile {
	if t != nil {
		if p, ok := t.profiles[id]; ok {
			return p
		}
		if p, ok := t.profiles[Normal]; ok {
			return p
		}
	}
	return defaultProfiles()[1]
}

// Has reports whether the table defines id.
func (t *Table) Has(id ID) bool {
	_, ok := t.profiles[id]
	return ok
}

// IDs returns the identifiers in table order.
func (t *Table) IDs() []ID {
	out := make([]ID, len(t.order))
	copy(out, t.order)
	return out
}

// Profiles returns all profiles in table order.
func (t *Table) Profiles() []Profile {
	out := make([]Profile, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.profiles[id])
	}
	return out
}

// Next returns the identifier after id, wrapping around. Used by the
// settings scene to cycle difficulties.
func (t *Table) Next(id ID, step int) ID {
	if len(t.order) == 0 {
		return Normal
	}
	idx := 0
	for i, o := range t.order {
		if o == id {
			idx = i
			break
		}
	}
	n := len(t.order)
	return t.order[((idx+step)%n+n)%n]
}

// DefaultTable returns the built-in profiles without reading any file.
func DefaultTable() *Table {
	return NewTable(defaultProfiles()...)
}

func defaultProfiles() []Profile {
	return []Profile{
		{
			ID: Easy, Name: "Easy",
			MinWait: 4.0, MaxWait: 5.0,
			CountdownEnabled: true, WarningTime: 1.0, PracticeMode: true,
			Thresholds: thresholds(400, 600, 800, 1000, 1500),
		},
		{
			ID: Normal, Name: "Normal",
			MinWait: 2.5, MaxWait: 4.5,
			WarningTime: 0.5,
			Thresholds:  thresholds(250, 400, 600, 800, 1200),
		},
		{
			ID: Hard, Name: "Hard",
			MinWait: 1.5, MaxWait: 4.0,
			WarningTime: 0.2,
			Thresholds:  thresholds(180, 300, 450, 600, 900),
		},
		{
			ID: Beast, Name: "Beast",
			MinWait: 0.8, MaxWait: 3.5,
			Thresholds: thresholds(120, 200, 300, 450, 600),
		},
		{
			ID: TwitchyGod, Name: "Twitchy God",
			MinWait: 0.3, MaxWait: 2.0,
			FakeSignals: true,
			Thresholds:  thresholds(80, 120, 180, 250, 350),
		},
	}
}

func thresholds(excellent, good, average, poor, meh int) []Threshold {
	return []Threshold{
		{Level: LevelExcellent, Label: "LIGHTNING FAST!", CeilingMS: excellent},
		{Level: LevelGood, Label: "SUPER QUICK!", CeilingMS: good},
		{Level: LevelAverage, Label: "NICE JOB!", CeilingMS: average},
		{Level: LevelPoor, Label: "NOT BAD!", CeilingMS: poor},
		{Level: LevelMeh, Label: "SLEEPY!", CeilingMS: meh},
	}
}
