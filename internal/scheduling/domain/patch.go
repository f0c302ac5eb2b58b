package domain

// ChangeType discriminates schedule patch entries.
type ChangeType string

const (
	ChangeInsert ChangeType = "insert"
	ChangeDelete ChangeType = "delete"
)

// Change is one localized edit recorded against a generated schedule, so
// small adjustments can be replayed over a base timeline without a full
// regeneration.
type Change struct {
	Type   ChangeType `json:"type"`
	Block  *Block     `json:"block,omitempty"`
	TaskID string     `json:"taskId,omitempty"`
}

// ApplyChanges replays a change journal over a base block list, returning a
// new chronologically ordered list. Inserts append their block; deletes
// remove every block referencing the task id. Deletes without a task id are
// ignored, since sleep, break, and free blocks all carry an empty one.
func ApplyChanges(base []Block, changes []Change) []Block {
	out := make([]Block, 0, len(base)+len(changes))
	out = append(out, base...)

	for _, change := range changes {
		switch change.Type {
		case ChangeInsert:
			if change.Block != nil {
				out = append(out, *change.Block)
			}
		case ChangeDelete:
			if change.TaskID == "" {
				continue
			}
			kept := out[:0]
			for _, b := range out {
				if b.TaskID != change.TaskID {
					kept = append(kept, b)
				}
			}
			out = kept
		}
	}

	SortBlocks(out)
	return out
}
