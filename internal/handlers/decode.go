package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"
)

// DateLayout is the calendar date form accepted for every time field
const DateLayout = "2006-01-02"

var timeType = reflect.TypeOf(time.Time{})

// decodeJSON decodes a request body into dest and rejects unknown fields.
// Top-level time fields accept either RFC 3339 or a calendar date, which is
// read as midnight UTC.
func decodeJSON(r *http.Request, dest interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	if fields := timeFields(reflect.TypeOf(dest)); len(fields) > 0 {
		body = expandDates(body, fields)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

// timeFields returns the json names of the time.Time and *time.Time fields
// of t, including those promoted from embedded structs
func timeFields(t reflect.Type) map[string]bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	fields := make(map[string]bool)
	if t.Kind() != reflect.Struct || t == timeType {
		return fields
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}

		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if f.Anonymous && name == "" && ft.Kind() == reflect.Struct {
			for k := range timeFields(ft) {
				fields[k] = true
			}
			continue
		}
		if !f.IsExported() || ft != timeType {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = true
	}
	return fields
}

// expandDates rewrites calendar dates under the given keys to RFC 3339.
// Bodies that are not JSON objects are returned unchanged for the decoder
// to reject.
func expandDates(body []byte, fields map[string]bool) []byte {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil {
		return body
	}

	changed := false
	for key, raw := range object {
		if !fields[key] {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		day, err := time.Parse(DateLayout, s)
		if err != nil {
			continue
		}
		object[key], _ = json.Marshal(day.Format(time.RFC3339))
		changed = true
	}

	if !changed {
		return body
	}
	out, err := json.Marshal(object)
	if err != nil {
		return body
	}
	return out
}
