package domain

type TableState string

const (
	TableFree     TableState = "free"
	TableOccupied TableState = "occupied"
)

// Table represents a physical table. The state is derived from the order
// lifecycle: occupied while an active order references the table, free
// otherwise. Only ledger transitions may change it.
type Table struct {
	ID     int
	Number int
	State  TableState
}
