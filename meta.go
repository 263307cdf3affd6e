package testhub

import "strconv"

// ListOptions controls offset-based paging for list operations.
type ListOptions struct {
	Skip  int
	Limit int
}

func (l ListOptions) queryParams() map[string]string {
	params := map[string]string{}
	if l.Skip > 0 {
		params["skip"] = strconv.Itoa(l.Skip)
	}
	if l.Limit > 0 {
		params["limit"] = strconv.Itoa(l.Limit)
	}
	return params
}
