package dessert

// DefaultTiers returns the classic dessert progression.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "Cupcake", ImageRef: "cupcake", Price: 5, Threshold: 0},
		{Name: "Donut", ImageRef: "donut", Price: 10, Threshold: 5},
		{Name: "Eclair", ImageRef: "eclair", Price: 15, Threshold: 20},
		{Name: "Froyo", ImageRef: "froyo", Price: 30, Threshold: 50},
		{Name: "Gingerbread", ImageRef: "gingerbread", Price: 50, Threshold: 100},
		{Name: "Honeycomb", ImageRef: "honeycomb", Price: 100, Threshold: 200},
		{Name: "Ice Cream Sandwich", ImageRef: "icecreamsandwich", Price: 500, Threshold: 500},
		{Name: "Jellybean", ImageRef: "jellybean", Price: 1000, Threshold: 1000},
		{Name: "KitKat", ImageRef: "kitkat", Price: 2000, Threshold: 2000},
		{Name: "Lollipop", ImageRef: "lollipop", Price: 3000, Threshold: 4000},
		{Name: "Marshmallow", ImageRef: "marshmallow", Price: 4000, Threshold: 8000},
		{Name: "Nougat", ImageRef: "nougat", Price: 5000, Threshold: 16000},
		{Name: "Oreo", ImageRef: "oreo", Price: 6000, Threshold: 20000},
	}
}

// Default returns the validated default table.
func Default() *Table {
	return MustTable(DefaultTiers())
}
