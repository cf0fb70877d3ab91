package dashboard

// View is the dashboard page: one card per grouping.
type View struct {
	Title  string
	Groups []Group
}

// Group is one card. Target is the detail page the card links to.
type Group struct {
	Title  string
	Target string
	Rows   []Row
}

type Row struct {
	Key   string
	Count int
	Color string
}
