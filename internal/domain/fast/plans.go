package fast

// Plan describes a fasting protocol: hours fasting vs. hours eating.
type Plan struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	FastHours float64 `json:"fastHours"`
	EatHours  float64 `json:"eatHours"`
}

// Plans lists the built-in fasting protocols, mildest first.
var Plans = []Plan{
	{ID: "13-11", Name: "13:11", FastHours: 13, EatHours: 11},
	{ID: "16-8", Name: "16:8", FastHours: 16, EatHours: 8},
	{ID: "18-6", Name: "18:6", FastHours: 18, EatHours: 6},
	{ID: "20-4", Name: "20:4", FastHours: 20, EatHours: 4},
	{ID: "omad", Name: "OMAD", FastHours: 23, EatHours: 1},
}

// PlanByID looks up a built-in plan.
func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
