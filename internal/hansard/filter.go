package hansard

// ListingFilter narrows down a list of listings, nil fields do not filter.
type ListingFilter struct {
	StartDate *Date
	EndDate   *Date
	House     *House
	Limit     *int
	Offset    *int
}

// Validate checks the filter on its own, an offset past the end of the
// listings can only be detected by Apply.
func (f ListingFilter) Validate() error {
	if f.Limit != nil && *f.Limit <= 0 {
		return Invalid("limit must be greater than 0, got %d", *f.Limit)
	}
	if f.Offset != nil && *f.Offset <= 0 {
		return Invalid("offset must be greater than 0, got %d", *f.Offset)
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return Invalid("start date %s is after end date %s", f.StartDate, f.EndDate)
	}
	return nil
}

func (f ListingFilter) matches(l Listing) bool {
	if f.House != nil && l.House != *f.House {
		return false
	}
	if f.StartDate != nil && l.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && l.Date.After(*f.EndDate) {
		return false
	}
	return true
}

// Apply returns the listings that match the filter, in their original order.
func (f ListingFilter) Apply(listings []Listing) ([]Listing, error) {
	err := f.Validate()
	if err != nil {
		return nil, err
	}

	var out []Listing
	for _, l := range listings {
		if f.matches(l) {
			out = append(out, l)
		}
	}

	if f.Offset != nil {
		if *f.Offset >= len(out) {
			return nil, Invalid("offset %d is out of range, only %d listings match", *f.Offset, len(out))
		}
		out = out[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit < len(out) {
		out = out[:*f.Limit]
	}
	return out, nil
}

type ListingStats struct {
	Total            int `json:"total"`
	Senate           int `json:"senate"`
	NationalAssembly int `json:"national_assembly"`
}

func Stats(listings []Listing) ListingStats {
	stats := ListingStats{Total: len(listings)}
	for _, l := range listings {
		switch l.House {
		case Senate:
			stats.Senate++
		case NationalAssembly:
			stats.NationalAssembly++
		}
	}
	return stats
}
