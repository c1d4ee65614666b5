package model

// DefaultDetailDescription is used by Record.AddDetail.
const DefaultDetailDescription = "Default description"

// Detail is a leaf entry of a Record.
type Detail struct {
	id          ID
	Count       int
	Description string
}

// NewDetail creates a Detail with a fresh identifier.
func NewDetail(count int, description string) Detail {
	return Detail{
		id:          NewID(),
		Count:       count,
		Description: description,
	}
}

// ID returns the detail's identifier.
func (d Detail) ID() ID {
	return d.id
}

// Key returns the value used for hashing; it depends on the id only.
func (d Detail) Key() ID {
	return d.id
}

// Equal reports whether d and other are the same entity.
func (d Detail) Equal(other Detail) bool {
	return d.id == other.id
}

// SetCount replaces the detail's count.
func (d *Detail) SetCount(count int) {
	d.Count = count
}

// SetDescription replaces the detail's description.
func (d *Detail) SetDescription(description string) {
	d.Description = description
}
