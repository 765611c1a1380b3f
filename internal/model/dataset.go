package model

// Timestamp layouts used throughout the dataset. Due dates are stored at
// day granularity; everything else at second granularity.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Dataset is the whole in-memory state of the rota. It is persisted
// wholesale as a single JSON document after every mutation.
type Dataset struct {
	Members     []Member     `json:"members"`
	Tasks       []Task       `json:"tasks"`
	Assignments []Assignment `json:"assignments"`
}

// NewDataset returns an empty dataset with non-nil slices so it
// serializes as empty arrays rather than nulls.
func NewDataset() *Dataset {
	return &Dataset{
		Members:     []Member{},
		Tasks:       []Task{},
		Assignments: []Assignment{},
	}
}
