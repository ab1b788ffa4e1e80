package entity

// Project is the root scoping entity. Every other record carries its id.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
