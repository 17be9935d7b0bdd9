// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package response

import (
	"github.com/mitchellh/mapstructure"
)

// Decode resolves every declared field and collection of the response and
// decodes them into the given struct pointer, matching on field names or
// `mapstructure` tags. Collections decode into slices of structs,
// recursively. Absent optional fields are omitted, leaving the target's
// zero values in place.
func (r *Response) Decode(out any) error {
	m, err := r.fieldMap()
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(m)
}

func (r *Response) fieldMap() (map[string]any, error) {
	m := make(map[string]any)
	for _, sp := range r.schema.Specs() {
		if sp.CollectionOf != nil {
			members, err := r.Collection(sp.Name)
			if err != nil {
				return nil, err
			}
			list := make([]map[string]any, 0, len(members))
			for _, member := range members {
				mm, err := member.fieldMap()
				if err != nil {
					return nil, err
				}
				list = append(list, mm)
			}
			m[sp.Name] = list
			continue
		}

		v, err := r.Field(sp.Name)
		if err != nil {
			return nil, err
		}
		if v.Present() {
			m[sp.Name] = v.Any()
		}
	}
	return m, nil
}
