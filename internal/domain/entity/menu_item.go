package entity

// MenuItem is a dish served at a station of a UCSB dining commons.
type MenuItem struct {
	ID                int64  `json:"id"`
	DiningCommonsCode string `json:"diningCommonsCode"`
	Name              string `json:"name"`
	Station           string `json:"station"`
}

// MenuItemName is the entity name used in not-found and delete messages.
const MenuItemName = "UCSBDiningCommonsMenuItem"

// Replace copies every mutable field of src onto m.
func (m *MenuItem) Replace(src *MenuItem) {
	m.DiningCommonsCode = src.DiningCommonsCode
	m.Name = src.Name
	m.Station = src.Station
}
