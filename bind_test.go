package primate_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mumingpo/primate"
	"github.com/mumingpo/primate/strict"
)

type member struct {
	Username string     `json:"username"`
	Birthday *time.Time `primate:"birthday"`
	Rank     int64      `json:"rank,omitempty"`
	Internal string     `json:"-"`
}

func memberCodec(t *testing.T) *primate.StructCodec[member] {
	t.Helper()
	c, err := primate.Bind[member](primate.Object(
		primate.Field("username", strict.String()),
		primate.Field("birthday", primate.Optional(dateCodec)),
		primate.Field("rank", strict.Int()),
	).Named("member"))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return c
}

func TestBind_RoundTrip(t *testing.T) {
	c := memberCodec(t)
	b := epoch
	raw, err := c.Serialize(member{Username: popeJohn, Birthday: &b, Rank: 12})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"username": popeJohn, "birthday": epochISO, "rank": int64(12)}, raw); diff != "" {
		t.Fatalf("serialize mismatch (-want +got):\n%s", diff)
	}
	got, err := c.Deserialize(map[string]any{"username": popeJohn, "birthday": epochISO, "rank": 12.0})
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if got.Username != popeJohn || got.Rank != 12 || got.Birthday == nil || !got.Birthday.Equal(epoch) {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestBind_NilPointerIsAbsent(t *testing.T) {
	c := memberCodec(t)
	raw, err := c.Serialize(member{Username: "x", Rank: 1})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if _, has := raw["birthday"]; has {
		t.Fatalf("nil optional pointer must be omitted: %#v", raw)
	}
	got, err := c.Deserialize(map[string]any{"username": "x", "rank": 1.0})
	if err != nil || got.Birthday != nil {
		t.Fatalf("deserialize: err=%v v=%+v", err, got)
	}
}

func TestBind_PropagatesObjectErrors(t *testing.T) {
	c := memberCodec(t)
	_, err := c.Deserialize(map[string]any{"username": "x", "rank": 1.5})
	if !errors.Is(err, &primate.Error{Code: primate.CodeInvalidType}) || primate.Path(err) != "/rank" {
		t.Fatalf("unexpected failure: %v (path %s)", err, primate.Path(err))
	}
	if c.Name() != "member" || c.Object() == nil {
		t.Fatalf("unexpected codec identity")
	}
}

func TestBind_RejectsUnmappedKeys(t *testing.T) {
	if _, err := primate.Bind[member](primate.Object(primate.Field("nickname", strict.String()))); err == nil {
		t.Fatalf("expected unmapped key to fail")
	}
	if _, err := primate.Bind[member](primate.Object(primate.Field("Internal", strict.String()))); err == nil {
		t.Fatalf("json:\"-\" fields must not be bound")
	}
	if _, err := primate.Bind[int](primate.Object()); err == nil {
		t.Fatalf("non-struct types must be rejected")
	}
}

func TestBind_NestsInsideArrays(t *testing.T) {
	list := primate.Array(memberCodec(t))
	got, err := list.Deserialize([]any{
		map[string]any{"username": "a", "rank": 1.0},
		map[string]any{"username": "b", "rank": 2.0, "birthday": epochISO},
	})
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if len(got) != 2 || got[1].Username != "b" || got[1].Birthday == nil {
		t.Fatalf("unexpected value: %+v", got)
	}
}

type counter struct {
	N     int     `json:"n"`
	Ratio float32 `json:"ratio"`
}

func TestBind_NumericConversionMustBeExact(t *testing.T) {
	c := primate.MustBind[counter](primate.Object(
		primate.Field("n", strict.Number()),
		primate.Field("ratio", strict.Number()),
	))
	got, err := c.Deserialize(map[string]any{"n": 3.0, "ratio": 0.5})
	if err != nil || got.N != 3 || got.Ratio != 0.5 {
		t.Fatalf("exact conversion: v=%+v err=%v", got, err)
	}
	for _, raw := range []map[string]any{
		{"n": 1.5, "ratio": 0.5},
		{"n": 1.0, "ratio": 0.1},
	} {
		_, err := c.Deserialize(raw)
		if err == nil {
			t.Fatalf("expected lossy conversion of %v to fail", raw)
		}
		var e *primate.Error
		if !errors.As(err, &e) || e.Code != primate.CodeField || e.Codec != "StructCodec" {
			t.Fatalf("expected struct field wrapper, got %v", err)
		}
	}
}
