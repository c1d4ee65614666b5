package model

// Record is a named, ordered collection of Details.
type Record struct {
	id      ID
	Name    string
	details []Detail
}

// NewRecord creates an empty Record with a fresh identifier.
func NewRecord(name string) *Record {
	return &Record{
		id:   NewID(),
		Name: name,
	}
}

// ID returns the record's identifier.
func (r *Record) ID() ID {
	return r.id
}

// Key returns the value used for hashing; it depends on the id only.
func (r *Record) Key() ID {
	return r.id
}

// Equal reports whether r and other are the same entity.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.id == other.id
}

// Details returns a copy of the record's details in insertion order.
func (r *Record) Details() []Detail {
	out := make([]Detail, len(r.details))
	copy(out, r.details)
	return out
}

// Len returns the number of details.
func (r *Record) Len() int {
	return len(r.details)
}

// Detail looks up a detail by id.
func (r *Record) Detail(id ID) (Detail, bool) {
	for _, d := range r.details {
		if d.id == id {
			return d, true
		}
	}
	return Detail{}, false
}

// Insert appends detail. It does not notify anyone; callers that need
// observers to see the change go through the client.
func (r *Record) Insert(detail Detail) {
	r.details = append(r.details, detail)
}

// AddDetail appends a default detail and returns it.
func (r *Record) AddDetail() Detail {
	d := NewDetail(0, DefaultDetailDescription)
	r.Insert(d)
	return d
}

// Rename sets the record's name.
func (r *Record) Rename(name string) {
	r.Name = name
}

// Clone returns a deep copy that keeps the same identifiers.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	return &Record{
		id:      r.id,
		Name:    r.Name,
		details: r.Details(),
	}
}

// CloneRecords deep-copies a record slice. A nil input yields an empty,
// non-nil slice.
func CloneRecords(records []*Record) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.Clone())
	}
	return out
}
