package domain

// Edge is a directed, weighted connection between two named locations.
// A zero weight between distinct locations never becomes an edge.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// Location is a named stop in the distance graph with its outgoing edges in
// construction order.
type Location struct {
	Name  string
	Edges []Edge
}

// Site maps a delivery street address onto a graph location name.
type Site struct {
	ID      int
	Name    string
	Address string
	Zip     string
}
