package db_models

import (
	"encoding/json"
	"strconv"
)

// Rating is a 0-5 score. Unrated marks a missing or unusable value and is
// encoded as the string "unrated" in JSON.
type Rating float64

const Unrated Rating = -1

func (r Rating) IsRated() bool { return r >= 0 }

func (r Rating) Label() string {
	if !r.IsRated() || r == 0 {
		return "Not Rated"
	}
	return strconv.FormatFloat(float64(r), 'f', 1, 64)
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.IsRated() {
		return []byte(`"unrated"`), nil
	}
	return json.Marshal(float64(r))
}

func (r *Rating) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"unrated"`, "null":
		*r = Unrated
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*r = Rating(f)
	return nil
}
