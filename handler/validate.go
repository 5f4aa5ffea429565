package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindFloat
)

type fieldSpec struct {
	name string
	kind fieldKind
	help string
}

// createPlantSchema lists the required create fields in the order they are
// checked. Only the first failing field is reported.
var createPlantSchema = []fieldSpec{
	{name: "name", kind: kindString, help: "Name is required"},
	{name: "image", kind: kindString, help: "Image URL is required"},
	{name: "price", kind: kindFloat, help: "Price is required"},
}

// fieldError names the first create field that is missing or malformed.
type fieldError struct {
	Field string
	Help  string
}

func (e *fieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Help) }

var errInvalidJSON = errors.New("invalid json")

type createPlantReq struct {
	Name  string
	Image string
	Price float64
}

// decodeCreatePlant reads a JSON object from body and checks it against
// createPlantSchema. An empty body is treated as an empty object. Price may be
// a JSON number or a string holding one.
func decodeCreatePlant(body io.Reader) (createPlantReq, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return createPlantReq{}, err
	}
	fields := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return createPlantReq{}, errInvalidJSON
		}
	}

	var req createPlantReq
	for _, field := range createPlantSchema {
		v, ok := fields[field.name]
		if !ok || string(bytes.TrimSpace(v)) == "null" {
			return createPlantReq{}, &fieldError{Field: field.name, Help: field.help}
		}
		switch field.kind {
		case kindString:
			s, ok := parseString(v)
			if !ok {
				return createPlantReq{}, &fieldError{Field: field.name, Help: field.help}
			}
			if field.name == "name" {
				req.Name = s
			} else {
				req.Image = s
			}
		case kindFloat:
			f, ok := parseFloat(v)
			if !ok {
				return createPlantReq{}, &fieldError{Field: field.name, Help: field.help}
			}
			req.Price = f
		}
	}
	return req, nil
}

func parseString(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func parseFloat(v json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
