package model

import (
	"bytes"
	"encoding/json"
)

// UserRef is a weak reference into the user directory. It decodes from a bare
// id string or from an object carrying "id" (or "_id"), and always encodes as
// a summary object.
type UserRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = UserRef{ID: id}
		return nil
	}

	var obj struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Name    string `json:"name"`
		Avatar  string `json:"avatar"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	id := obj.ID
	if id == "" {
		id = obj.MongoID
	}
	*r = UserRef{ID: id, Name: obj.Name, Avatar: obj.Avatar}
	return nil
}

// RefID returns the referenced id, or "" for a nil reference.
func (r *UserRef) RefID() string {
	if r == nil {
		return ""
	}
	return r.ID
}
