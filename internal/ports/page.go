package ports

// Offset/limit window passed straight through to the data source.
type Page struct {
	Skip  int
	Limit int
}
