package pipeline

// Stats counts per-row data-quality issues recovered during a run. One
// bad row never aborts the pipeline; it is excluded from the views it
// cannot serve and tallied here.
type Stats struct {
	MalformedAmounts  int `json:"malformed_amounts"`
	UnparseableDates  int `json:"unparseable_dates"`
	UnmappedGenders   int `json:"unmapped_genders"`
	UnmappedLocations int `json:"unmapped_locations"`
	MissingCommission int `json:"missing_commission"`
	UnresolvedUsers   int `json:"unresolved_users"`
	Unclassifiable    int `json:"unclassifiable"`
}

func (s Stats) Total() int {
	return s.MalformedAmounts + s.UnparseableDates + s.UnmappedGenders +
		s.UnmappedLocations + s.MissingCommission + s.UnresolvedUsers + s.Unclassifiable
}
