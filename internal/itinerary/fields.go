package itinerary

import (
	"bytes"
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"tripplanner/internal/models/db_models"
)

// object is a decoded JSON object whose keys are matched loosely: case,
// underscores, spaces and dashes are ignored.
type object map[string]json.RawMessage

func normalizeKey(k string) string {
	var b strings.Builder
	for _, r := range k {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func asObject(raw json.RawMessage) (object, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(object, len(m))
	for _, k := range keys {
		nk := normalizeKey(k)
		if _, dup := out[nk]; !dup {
			out[nk] = m[k]
		}
	}
	return out, true
}

func rawObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

func (o object) get(names ...string) (json.RawMessage, bool) {
	for _, n := range names {
		if v, ok := o[normalizeKey(n)]; ok && !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

func (o object) str(names ...string) string {
	v, ok := o.get(names...)
	if !ok {
		return ""
	}
	return asString(v)
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

// asString renders strings, numbers and booleans as text. Arrays of strings
// are joined with commas. Anything else is empty.
func asString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '[':
		items, _ := asArray(raw)
		parts := make([]string, 0, len(items))
		for _, it := range items {
			if s := asString(it); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case '{', 'n':
		return ""
	default:
		return string(raw)
	}
}

func asStrings(raw json.RawMessage) []string {
	items, ok := asArray(raw)
	if !ok {
		if s := asString(raw); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := asString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// asFloat accepts a JSON number or the first number embedded in a string.
func asFloat(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	if raw[0] == '"' {
		m := numberPattern.FindString(asString(raw))
		if m == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(m, 64)
		return v, err == nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

func asRating(raw json.RawMessage, present bool) db_models.Rating {
	if !present {
		return db_models.Unrated
	}
	v, ok := asFloat(raw)
	if !ok || v <= 0 || v > 5 {
		return db_models.Unrated
	}
	return db_models.Rating(v)
}

// asGeo reads {"latitude":..,"longitude":..}, {"lat":..,"lng":..} or a
// "lat, lng" string. Out of range or 0,0 coordinates are treated as missing.
func asGeo(raw json.RawMessage, present bool) *db_models.GeoCoordinates {
	if !present {
		return nil
	}
	var lat, lng float64
	var okLat, okLng bool
	if o, ok := asObject(raw); ok {
		if v, ok := o.get("latitude", "lat"); ok {
			lat, okLat = asFloat(v)
		}
		if v, ok := o.get("longitude", "lng", "lon", "long"); ok {
			lng, okLng = asFloat(v)
		}
	} else {
		nums := numberPattern.FindAllString(asString(raw), 2)
		if len(nums) == 2 {
			var err1, err2 error
			lat, err1 = strconv.ParseFloat(nums[0], 64)
			lng, err2 = strconv.ParseFloat(nums[1], 64)
			okLat, okLng = err1 == nil, err2 == nil
		}
	}
	if !okLat || !okLng {
		return nil
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 || (lat == 0 && lng == 0) {
		return nil
	}
	return &db_models.GeoCoordinates{Latitude: lat, Longitude: lng}
}
