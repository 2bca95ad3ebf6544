package yamlutil

import (
	"bytes"
	"errors"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var s sample
	if err := UnmarshalStrict([]byte("name: doc\ncount: 3\n"), &s); err != nil {
		t.Fatalf("UnmarshalStrict: %v", err)
	}
	if s.Name != "doc" || s.Count != 3 {
		t.Errorf("got %+v", s)
	}
}

func TestUnmarshalStrictRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	var s sample
	if err := UnmarshalStrict([]byte("name: doc\nextra: nope\n"), &s); err == nil {
		t.Errorf("unknown field should be rejected")
	}
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	var s sample

	if err := UnmarshalStrict(nil, &s); !errors.Is(err, ErrNilData) {
		t.Errorf("nil data: err = %v, want ErrNilData", err)
	}
	if err := UnmarshalStrict([]byte("name: x"), nil); !errors.Is(err, ErrNilDestination) {
		t.Errorf("nil destination: err = %v, want ErrNilDestination", err)
	}

	oversized := bytes.Repeat([]byte("a"), MaxInputSize+1)
	if err := UnmarshalStrict(oversized, &s); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("oversized input: err = %v, want ErrInputTooLarge", err)
	}
}
