// Package slug turns restaurant ids into short public share slugs.
package slug

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

const minLength = 6

var ErrInvalid = errors.New("invalid slug")

type Codec struct {
	h *hashids.HashID
}

func New(salt string) (*Codec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = minLength

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("hashids: %w", err)
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(id int64) (string, error) {
	return c.h.EncodeInt64([]int64{id})
}

// Decode accepts only slugs this codec could have produced.
func (c *Codec) Decode(s string) (int64, error) {
	ids, err := c.h.DecodeInt64WithError(s)
	if err != nil || len(ids) != 1 {
		return 0, ErrInvalid
	}

	// hashids decodes some foreign strings; a round trip weeds them out
	again, err := c.Encode(ids[0])
	if err != nil || again != s {
		return 0, ErrInvalid
	}
	return ids[0], nil
}
