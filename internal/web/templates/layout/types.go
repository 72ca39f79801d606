package layout

// PageData carries what every page shell needs
type PageData struct {
	Title    string
	FullName string
	IsAdmin  bool
}
