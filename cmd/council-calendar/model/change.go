package model

type ChangeKind string

var (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// Change is one notification from the event change feed. Event is set for
// insert and update, ID alone for delete.
type Change struct {
	Kind  ChangeKind `json:"kind"`
	ID    string     `json:"id"`
	Event *Event     `json:"event,omitempty"`
}

func InsertChange(ev Event) Change {
	return Change{Kind: ChangeInsert, ID: ev.ID, Event: &ev}
}

func UpdateChange(ev Event) Change {
	return Change{Kind: ChangeUpdate, ID: ev.ID, Event: &ev}
}

func DeleteChange(id string) Change {
	return Change{Kind: ChangeDelete, ID: id}
}
