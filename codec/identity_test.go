package codec_test

import (
	"errors"
	"testing"

	"github.com/mumingpo/primate"
	"github.com/mumingpo/primate/codec"
)

type point struct{ X, Y int }

func TestIdentity(t *testing.T) {
	c := codec.Identity[point]()
	if c.Name() != "identityCodec(codec_test.point)" {
		t.Fatalf("unexpected name %q", c.Name())
	}
	p := point{1, 2}
	out, err := c.Serialize(p)
	if err != nil || out != p {
		t.Fatalf("serialize: %v %v", out, err)
	}
	back, err := c.Deserialize(p)
	if err != nil || back != p {
		t.Fatalf("deserialize: %v %v", back, err)
	}
	if _, err := c.Deserialize(map[string]any{"X": 1.0}); !errors.Is(err, &primate.Error{Code: primate.CodeInvalidType}) {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestIdentity_InsideObject(t *testing.T) {
	obj := primate.Object(primate.Field("at", codec.Identity[point]()))
	out, err := obj.Serialize(map[string]any{"at": point{3, 4}})
	if err != nil || out["at"] != (point{3, 4}) {
		t.Fatalf("serialize: %#v %v", out, err)
	}
}
