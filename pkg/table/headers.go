package table

// Column keys known to the affiliated business table.
const (
	ColName    = "Name"
	ColNumber  = "Number"
	ColType    = "Type"
	ColStatus  = "Status"
	ColActions = "Actions"
)

// Header describes one table column. Filterable columns carry the filter
// options computed from the current record set.
type Header struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []Option `json:"options,omitempty"`
}

// Option is a single selectable filter value for a column.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// baseHeaders returns the static column specs in display order, restricted
// to the given columns when any are named. Unknown column names are ignored.
func baseHeaders(columns ...string) []Header {
	all := []Header{
		{Key: ColName, Label: "Business Name"},
		{Key: ColNumber, Label: "Number"},
		{Key: ColType, Label: "Type"},
		{Key: ColStatus, Label: "Status"},
		{Key: ColActions, Label: "Actions"},
	}
	if len(columns) == 0 {
		return all
	}

	wanted := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		wanted[col] = struct{}{}
	}
	out := make([]Header, 0, len(all))
	for _, h := range all {
		if _, ok := wanted[h.Key]; ok {
			out = append(out, h)
		}
	}
	return out
}
