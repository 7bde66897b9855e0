package model

const (
	BookmarkDatatype     = "bookmark"
	NoteDatatype         = "note"
	SpeedDialDatatype    = "speeddial"
	SearchEngineDatatype = "search_engine"
)

// Datatype describes one REST resource family: its path segment and
// whether its items form an ordered tree or a flat list.
type Datatype struct {
	Name string
	Tree bool
}

// Datatypes is the declarative table the generated operation set derives
// from. Order matters only for reproducible generation; the table is never
// mutated after init.
var Datatypes = []Datatype{
	{Name: BookmarkDatatype, Tree: true},
	{Name: NoteDatatype, Tree: true},
	{Name: SpeedDialDatatype, Tree: false},
	{Name: SearchEngineDatatype, Tree: false},
}
