package bingo

import "encoding/json"

// BoardSnapshot is a snapshot of a single board. It should be treated as a
// 100% immutable value.
type BoardSnapshot struct {
	Index    int    `json:"index"`
	Numbers  []Ball `json:"numbers"`
	Marked   []bool `json:"marked"`
	Won      bool   `json:"won"`
	Unmarked []Ball `json:"unmarked"`
}

var _ json.Marshaler = BoardSnapshot{}

// MarshalJSON serializes a board snapshot, allocating nil slices so they
// never get serialized as JSON null.
func (bs BoardSnapshot) MarshalJSON() ([]byte, error) {
	type plain BoardSnapshot
	snapCopy := plain(bs)
	if snapCopy.Numbers == nil {
		snapCopy.Numbers = []Ball{}
	}
	if snapCopy.Marked == nil {
		snapCopy.Marked = []bool{}
	}
	if snapCopy.Unmarked == nil {
		snapCopy.Unmarked = []Ball{}
	}
	return json.Marshal(snapCopy)
}

// GameSnapshot is a snapshot of the current game state. It should be treated as
// a 100% immutable value.
type GameSnapshot struct {
	Called []Ball          `json:"called"`
	Draws  []Ball          `json:"draws"`
	Boards []BoardSnapshot `json:"boards"`
}

var _ json.Marshaler = GameSnapshot{}

// MarshalJSON takes a game snapshot, and serializes it as JSON. All nil slices
// will automatically be allocated to ensure they don't get serialized as JSON
// null.
func (gs GameSnapshot) MarshalJSON() ([]byte, error) {
	type plain GameSnapshot
	snapCopy := plain(gs)
	if snapCopy.Called == nil {
		snapCopy.Called = []Ball{}
	}
	if snapCopy.Draws == nil {
		snapCopy.Draws = []Ball{}
	}
	if snapCopy.Boards == nil {
		snapCopy.Boards = []BoardSnapshot{}
	}

	return json.Marshal(snapCopy)
}

// SnapshotProvider is anything that can describe the current state of a game.
type SnapshotProvider interface {
	Snapshot() GameSnapshot
}
