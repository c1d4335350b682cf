package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidIDRef reports an id reference that is not a numeric id.
var ErrInvalidIDRef = errors.New("invalid id reference")

// EngineerRef is the engineer reference of an assignment request. Clients send
// either a single id or a list of ids, as a number or a numeric string.
type EngineerRef []uint64

// Primary returns the authoritative engineer id, or 0 when none was given.
func (r EngineerRef) Primary() uint64 {
	if len(r) == 0 {
		return 0
	}
	return r[0]
}

func (r *EngineerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}

	if data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidIDRef, err)
		}
		ids := make(EngineerRef, 0, len(raw))
		for _, item := range raw {
			id, err := parseRefID(item)
			if err != nil {
				return err
			}
			if id != 0 {
				ids = append(ids, id)
			}
		}
		*r = ids
		return nil
	}

	id, err := parseRefID(data)
	if err != nil {
		return err
	}
	if id == 0 {
		*r = nil
		return nil
	}
	*r = EngineerRef{id}
	return nil
}

// ProjectRef is a single project id sent as a number or a numeric string.
type ProjectRef uint64

func (r *ProjectRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}
	id, err := parseRefID(data)
	if err != nil {
		return err
	}
	*r = ProjectRef(id)
	return nil
}

func parseRefID(data json.RawMessage) (uint64, error) {
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidIDRef, string(data))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIDRef, s)
	}
	return n, nil
}
